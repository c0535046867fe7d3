// In file: internal/detective/fallback.go
package detective

import (
	"fmt"

	"github.com/dileep-u-k/code-detective/internal/api"
)

const (
	verdictSummary = "Code Detective Verdict: This code is likely transforming input data into a result"
	fallbackNote   = "AI quota unavailable --> returning Code Detective fallback"
	wantedPrefix   = "Most Wanted Bug: "
	signalSlots    = 3
)

// Boilerplate that does not depend on the snippet. Analyze copies these so a
// caller mutating one result cannot change another.
var (
	hiddenAssumptions = [...]api.HiddenAssumption{
		{Assumption: "Inputs are well-formed and contain expected fields/types", Risk: "Unexpected values can crash or corrupt results"},
		{Assumption: "Required fields exist", Risk: "Missing fields lead to KeyError/undefined values"},
	}

	genericProblems = [...]api.FutureProblem{
		{Severity: api.SeverityMed, Problem: "Maintainability risk as logic grows", Why: "Logic + validation are mixed; changes get risky"},
		{Severity: api.SeverityLow, Problem: "Harder to extend safely", Why: "No clear contract/tests shown; future features may break behavior"},
	}

	recommendation = api.Recommendation{
		Action:       "Add a small validation guard before the core logic runs",
		WhyItMatters: "Prevents the most common crashes and makes intent clearer",
		FirstStep:    "Check required fields/types and return a friendly error if missing",
	}
)

// Analyze produces the heuristic analysis of a snippet. declaredLanguage wins
// over detection when it is non-blank.
func Analyze(code, declaredLanguage string) *api.AnalysisResult {
	lang := ResolveLanguage(code, declaredLanguage)
	signals := Scan(code)
	bug := MostWantedBug(code)
	confidence := Confidence(len(signals.Clues), signals.Has(SignalKeyAccess), signals.Has(SignalTodo))

	problems := make([]api.FutureProblem, 0, 1+len(genericProblems))
	problems = append(problems, api.FutureProblem{
		Severity: bug.Severity,
		Problem:  wantedPrefix + bug.Problem,
		Why:      bug.Why,
	})
	problems = append(problems, genericProblems[:]...)

	return &api.AnalysisResult{
		AIUsed:           false,
		ConfidenceScore:  &confidence,
		Badges:           signals.Badges,
		LanguageDetected: lang,
		IntendedGoal: api.IntendedGoal{
			Summary: verdictSummary,
			Signals: signalLines(signals.Clues),
		},
		HiddenAssumptions: append([]api.HiddenAssumption(nil), hiddenAssumptions[:]...),
		FutureProblems:    problems,
		Recommendation:    recommendation,
		Note:              fallbackNote,
	}
}

// signalLines numbers the first three clues, repeating the first clue when
// there are fewer than three.
func signalLines(clues []string) []string {
	lines := make([]string, signalSlots)
	for i := range lines {
		clue := clues[0]
		if i < len(clues) {
			clue = clues[i]
		}
		lines[i] = fmt.Sprintf("Clue #%d: %s", i+1, clue)
	}
	return lines
}
