// In file: internal/api/score.go
package api

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Bounds of confidence_score on every result.
const (
	MinConfidenceScore = 10
	MaxConfidenceScore = 95
)

// UnmarshalJSON decodes a result leniently. Models write confidence_score as an
// integer, a float or a numeric string; all of them are rounded and clamped,
// and anything unreadable leaves the score unset instead of failing the decode.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	aux := struct {
		*plain
		ConfidenceScore json.RawMessage `json:"confidence_score"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ConfidenceScore = parseScore(aux.ConfidenceScore)
	return nil
}

func parseScore(raw json.RawMessage) *int {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	score := max(MinConfidenceScore, min(MaxConfidenceScore, int(math.Round(f))))
	return &score
}
