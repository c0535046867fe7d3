// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components whose
// output ends up in the result cache.
//
// Including these version strings in cache keys means a change to the prompt or
// to the response shape automatically stops old entries from matching, so stale
// analyses are never served after a deploy.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the parts of the application
// that affect what an analysis looks like. Bump one before deploying a change to it.
var ComponentVersions = struct {
	// Prompt changes whenever the system prompt or the user prompt template changes.
	Prompt string

	// Schema changes whenever api.AnalysisResult gains, loses or renames a field.
	Schema string
}{
	Prompt: "v1.0",
	Schema: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for caching analyses.
//
// The language and code are hashed together with a separator byte so that
// ("ab", "c") and ("a", "bc") never collide.
//
// Example output: "intentcache:a1b2c3d4...:pv1.0_sv1.0"
func GenerateVersionedCacheKey(prefix, language, code string) string {
	hasher := sha256.New()
	hasher.Write([]byte(language))
	hasher.Write([]byte{0})
	hasher.Write([]byte(code))
	inputHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("pv%s_sv%s", ComponentVersions.Prompt, ComponentVersions.Schema)

	return fmt.Sprintf("%s:%s:%s", prefix, inputHash, versionString)
}
