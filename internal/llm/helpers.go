// In file: internal/llm/helpers.go

// Package llm contains the logic for talking to Large Language Models: the
// client interface, the Gemini client, the analysis prompt and the helpers that
// turn raw model text into structured results.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when model output contains no JSON object at all.
var ErrNoJSON = errors.New("no JSON object found in model output")

// ExtractJSON decodes model output into v. Models often wrap JSON in markdown
// fences or surround it with prose, so when the whole text is not valid JSON the
// outermost {...} span is tried instead.
func ExtractJSON(text string, v any) error {
	clean := stripCodeFence(text)
	if clean == "" {
		return ErrNoJSON
	}

	err := json.Unmarshal([]byte(clean), v)
	if err == nil {
		return nil
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	if err := json.Unmarshal([]byte(clean[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to decode model JSON: %w", err)
	}
	return nil
}

func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
