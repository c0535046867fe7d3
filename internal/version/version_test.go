package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVersionedCacheKey(t *testing.T) {
	key := GenerateVersionedCacheKey("intentcache", "python", "print(1)")

	assert.True(t, strings.HasPrefix(key, "intentcache:"))
	assert.True(t, strings.HasSuffix(key, ":pv"+ComponentVersions.Prompt+"_sv"+ComponentVersions.Schema))
	assert.Equal(t, key, GenerateVersionedCacheKey("intentcache", "python", "print(1)"))
}

func TestGenerateVersionedCacheKey_SeparatesFields(t *testing.T) {
	assert.NotEqual(t,
		GenerateVersionedCacheKey("p", "ab", "c"),
		GenerateVersionedCacheKey("p", "a", "bc"),
	)
	assert.NotEqual(t,
		GenerateVersionedCacheKey("p", "python", "x"),
		GenerateVersionedCacheKey("p", "", "x"),
	)
}

func TestGenerateVersionedCacheKey_ChangesWithVersion(t *testing.T) {
	before := GenerateVersionedCacheKey("p", "go", "x")

	old := ComponentVersions.Prompt
	ComponentVersions.Prompt = "v9.9"
	defer func() { ComponentVersions.Prompt = old }()

	assert.NotEqual(t, before, GenerateVersionedCacheKey("p", "go", "x"))
}
