// In file: internal/llm/client.go
package llm

import "context"

// =================================================================================
// Core Data Structures
// =================================================================================

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message sent to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig holds the parameters that control the LLM's generation behavior.
type GenerationConfig struct {
	// The specific model to use for the generation (e.g., "gemini-2.0-flash").
	Model string
	// Controls randomness. Using a pointer distinguishes 0.0 from unset.
	Temperature *float32
	// The maximum number of tokens to generate in the response.
	MaxTokens int
	// JSONOutput asks the provider to constrain the response to JSON.
	JSONOutput bool
}

// Usage reports token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult holds the complete output from an LLM call.
type GenerationResult struct {
	Content string
	Usage   Usage
}

// =================================================================================
// LLM Client Interface
// =================================================================================

// LLMClient is the interface every model client implements.
type LLMClient interface {
	// Generate performs a blocking request and returns the complete result.
	// Errors caused by quota or rate-limit exhaustion satisfy IsQuotaExhausted.
	Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error)
}
