// In file: internal/llm/prompt.go
package llm

import (
	"strconv"
	"strings"
)

// systemPrompt frames the model as a reviewer and pins the output schema.
// The schema mirrors api.AnalysisResult.
const systemPrompt = `You are a senior software architect and code reviewer.

Goal: Analyze the INTENT behind the code and predict future problems.
Do NOT explain syntax line by line.

If the code is incomplete or ambiguous, DO NOT guess. Instead, ask 3–6 clarifying questions.

OUTPUT FORMAT (JSON only)
If enough information:
{
  "language_detected": "...",
  "confidence_score": 10-95,
  "badges": ["short label", "..."],
  "intended_goal": {
    "summary": "1 sentence",
    "signals": ["bullet", "bullet"]
  },
  "hidden_assumptions": [
    {"assumption": "...", "risk": "..."},
    {"assumption": "...", "risk": "..."}
  ],
  "future_problems": [
    {"severity": "Low|Med|High", "problem": "...", "why": "..."},
    {"severity": "Low|Med|High", "problem": "...", "why": "..."}
  ],
  "one_high_impact_recommendation": {
    "action": "...",
    "why_it_matters": "...",
    "first_step": "..."
  }
}

If NOT enough information:
{
  "language_detected": "...",
  "needs_more_context": true,
  "clarifying_questions": ["...", "...", "..."]
}

Rules:
- Be specific and practical.
- Keep each field concise.
- Return valid JSON only (no markdown).`

const userPromptTemplate = `INPUT
- Language (may be unknown): {language}
- Code (max {max_lines} lines):
{code}`

// UnknownLanguage is sent to the model when the caller did not declare a language.
const UnknownLanguage = "unknown"

// BuildAnalysisMessages renders the intent-analysis prompt for one snippet.
func BuildAnalysisMessages(language, code string, maxLines int) []Message {
	if strings.TrimSpace(language) == "" {
		language = UnknownLanguage
	}
	user := strings.NewReplacer(
		"{language}", language,
		"{max_lines}", strconv.Itoa(maxLines),
		"{code}", code,
	).Replace(userPromptTemplate)

	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: user},
	}
}
