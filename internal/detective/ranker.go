// In file: internal/detective/ranker.go
package detective

import (
	"regexp"

	"github.com/dileep-u-k/code-detective/internal/api"
)

const (
	baseConfidence     = 50
	perClueConfidence  = 10
	maxClueConfidence  = 30
	keyAccessBonus     = 10
	todoPenalty        = 10
	minConfidenceScore = api.MinConfidenceScore
	maxConfidenceScore = api.MaxConfidenceScore
)

// divisionByZeroRegex is a lexical heuristic. It also fires on things like
// dates or comments, which is accepted.
var divisionByZeroRegex = regexp.MustCompile(`/\s*0`)

// Bug is the single predicted defect surfaced as the "Most Wanted Bug".
type Bug struct {
	Severity api.Severity
	Problem  string
	Why      string
}

type bugRule struct {
	matches func(code string) bool
	bug     Bug
}

// bugRules is evaluated in order; the first match is the most wanted bug.
var bugRules = []bugRule{
	{hasKeyAccess, Bug{api.SeverityHigh, "Missing key / undefined field crash", "Direct indexing like item['x'] assumes the key exists"}},
	{divisionByZeroRegex.MatchString, Bug{api.SeverityHigh, "Division by zero", "Math operation risks runtime error"}},
}

var defaultBug = Bug{api.SeverityMed, "Input assumptions break silently", "No validation suggests edge cases will slip in"}

// MostWantedBug picks the highest-priority predicted defect for a snippet.
func MostWantedBug(code string) Bug {
	for _, rule := range bugRules {
		if rule.matches(code) {
			return rule.bug
		}
	}
	return defaultBug
}

// Confidence scores how many independent signals backed the heuristic verdict.
// clueCount is the uncapped number of clues; the result is clamped to [10, 95].
func Confidence(clueCount int, hasKeyAccess, hasTodo bool) int {
	score := baseConfidence + min(maxClueConfidence, perClueConfidence*(clueCount-1))
	if hasKeyAccess {
		score += keyAccessBonus
	}
	if hasTodo {
		score -= todoPenalty
	}
	return max(minConfidenceScore, min(maxConfidenceScore, score))
}
