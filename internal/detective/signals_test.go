package detective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClues_LowSignal(t *testing.T) {
	for _, code := range []string{"", "x = 1", "format = forward", "returned = iffy"} {
		assert.Equal(t, []string{LowSignalClue}, ExtractClues(code), "code %q", code)
		assert.Empty(t, ExtractBadges(code), "code %q", code)
	}
}

func TestExtractClues_PriorityOrder(t *testing.T) {
	code := "item['x'] # TODO\nif a:\n  return b\nfor i in xs: pass"

	clues := ExtractClues(code)

	assert.Equal(t, []string{
		"Loop detected → iterating over data",
		"Return detected → computing a result",
		"Branching detected → conditional logic",
		"TODO/FIXME found → unfinished logic",
		"Direct key access detected → possible missing key crash",
	}, clues)
}

func TestExtractBadges(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"loop only", "while True: pass", []string{"Looping Logic"}},
		{"return has no badge", "return 1", []string{}},
		{"branch", "if x: y()", []string{"Branching"}},
		{"fixme", "// FIXME later", []string{"Incomplete"}},
		{"todo is case sensitive", "// todo later", []string{}},
		{"double quoted key", `x = row["id"]`, []string{"Risk: Missing Key"}},
		{
			"all badges, key access first",
			"for r in rows:\n  if r['a']:\n    pass # TODO",
			[]string{"Risk: Missing Key", "Looping Logic", "Branching", "Incomplete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badges := ExtractBadges(tt.code)
			assert.Equal(t, tt.want, badges)
			assert.LessOrEqual(t, len(badges), MaxBadges)
		})
	}
}

func TestScan_Has(t *testing.T) {
	s := Scan("total = d['k'] # TODO")

	require.Len(t, s.Clues, 2)
	assert.True(t, s.Has(SignalKeyAccess))
	assert.True(t, s.Has(SignalTodo))
	assert.False(t, s.Has(SignalLoop))
	assert.False(t, s.Has(SignalReturn))
	assert.False(t, s.Has(SignalBranch))
}
