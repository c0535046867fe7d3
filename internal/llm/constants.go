// In file: internal/llm/constants.go
package llm

// This file centralizes constants shared across the llm package.
const (
	defaultMaxTokens = 2048
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)
