// In file: internal/api/types.go

// Package api defines the public request and response types of the analysis
// service. Both the LLM path and the heuristic fallback path produce an
// AnalysisResult, so callers never need to special-case where a result came from.
package api

// Severity ranks a predicted problem.
type Severity string

const (
	SeverityLow  Severity = "Low"
	SeverityMed  Severity = "Med"
	SeverityHigh Severity = "High"
)

// AnalyzeRequest is the body accepted by POST /analyze.
type AnalyzeRequest struct {
	// Code is a pointer so an explicitly empty snippet is distinguishable from a missing field.
	Code     *string `json:"code" binding:"required"`
	Language *string `json:"language"`
}

// IntendedGoal is the inferred purpose of the snippet.
type IntendedGoal struct {
	Summary string   `json:"summary"`
	Signals []string `json:"signals"`
}

// HiddenAssumption pairs something the code silently relies on with what breaks if it is false.
type HiddenAssumption struct {
	Assumption string `json:"assumption"`
	Risk       string `json:"risk"`
}

// FutureProblem is a defect the code is likely to run into.
type FutureProblem struct {
	Severity Severity `json:"severity"`
	Problem  string   `json:"problem"`
	Why      string   `json:"why"`
}

// Recommendation is the single highest-impact change suggested for the snippet.
type Recommendation struct {
	Action       string `json:"action"`
	WhyItMatters string `json:"why_it_matters"`
	FirstStep    string `json:"first_step"`
}

// AnalysisResult is the response contract of POST /analyze.
// Field order is the wire order.
type AnalysisResult struct {
	AIUsed            bool               `json:"ai_used"`
	ConfidenceScore   *int               `json:"confidence_score,omitempty"`
	Badges            []string           `json:"badges"`
	LanguageDetected  string             `json:"language_detected"`
	IntendedGoal      IntendedGoal       `json:"intended_goal"`
	HiddenAssumptions []HiddenAssumption `json:"hidden_assumptions"`
	FutureProblems    []FutureProblem    `json:"future_problems"`
	Recommendation    Recommendation     `json:"one_high_impact_recommendation"`

	// Only the LLM path sets these, when the snippet is too ambiguous to analyze.
	NeedsMoreContext    bool     `json:"needs_more_context,omitempty"`
	ClarifyingQuestions []string `json:"clarifying_questions,omitempty"`

	Note string `json:"note,omitempty"`
}

// Normalize replaces nil collections with empty ones so every result
// serializes with the same shape.
func (r *AnalysisResult) Normalize() {
	if r.Badges == nil {
		r.Badges = []string{}
	}
	if r.IntendedGoal.Signals == nil {
		r.IntendedGoal.Signals = []string{}
	}
	if r.HiddenAssumptions == nil {
		r.HiddenAssumptions = []HiddenAssumption{}
	}
	if r.FutureProblems == nil {
		r.FutureProblems = []FutureProblem{}
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
