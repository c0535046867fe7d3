package detective

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dileep-u-k/code-detective/internal/api"
)

func TestMostWantedBug(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		severity api.Severity
		problem  string
	}{
		{"key access beats division", `x = d["k"] / 0`, api.SeverityHigh, "Missing key / undefined field crash"},
		{"single quoted key", "v = cfg['port']", api.SeverityHigh, "Missing key / undefined field crash"},
		{"division no space", "r = a/0", api.SeverityHigh, "Division by zero"},
		{"division with space", "r = a / 0", api.SeverityHigh, "Division by zero"},
		{"division by decimal still fires", "r = a / 0.5", api.SeverityHigh, "Division by zero"},
		{"division by variable", "r = a / b", api.SeverityMed, "Input assumptions break silently"},
		{"empty", "", api.SeverityMed, "Input assumptions break silently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bug := MostWantedBug(tt.code)
			assert.Equal(t, tt.severity, bug.Severity)
			assert.Equal(t, tt.problem, bug.Problem)
			assert.NotEmpty(t, bug.Why)
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name      string
		clues     int
		keyAccess bool
		todo      bool
		want      int
	}{
		{"single clue", 1, false, false, 50},
		{"two clues", 2, false, false, 60},
		{"four clues hits cap", 4, false, false, 80},
		{"many clues stays capped", 12, false, false, 80},
		{"key access bonus", 4, true, false, 90},
		{"todo penalty", 2, false, true, 50},
		{"both", 5, true, true, 80},
		{"large negative clamps to floor", -100, false, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Confidence(tt.clues, tt.keyAccess, tt.todo))
		})
	}
}

func TestConfidence_AlwaysInRange(t *testing.T) {
	for clues := -5; clues <= 20; clues++ {
		for _, key := range []bool{false, true} {
			for _, todo := range []bool{false, true} {
				c := Confidence(clues, key, todo)
				assert.GreaterOrEqual(t, c, 10)
				assert.LessOrEqual(t, c, 95)
			}
		}
	}
}
