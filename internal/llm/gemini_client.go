// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the client for interacting with Google's Gemini models.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

var _ LLMClient = (*GeminiClient)(nil)

// NewGeminiClient creates a client bound to a default model. The model can be
// overridden per request through GenerationConfig.Model.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if modelID == "" {
		modelID = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelID: modelID}, nil
}

// Generate performs a standard, blocking request to the Gemini API.
func (c *GeminiClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error) {
	system, history, prompt, err := splitMessages(messages)
	if err != nil {
		return nil, err
	}

	modelID := c.modelID
	if config != nil && config.Model != "" {
		modelID = config.Model
	}
	// GenerativeModel carries mutable settings, so each request gets its own.
	model := c.client.GenerativeModel(modelID)
	configureModel(model, config)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	var resp *genai.GenerateContentResponse
	if len(history) > 0 {
		chat := model.StartChat()
		chat.History = history
		resp, err = chat.SendMessage(ctx, genai.Text(prompt))
	} else {
		resp, err = model.GenerateContent(ctx, genai.Text(prompt))
	}
	if err != nil {
		return nil, wrapProviderError("gemini", err)
	}
	return parseGeminiResponse(resp)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// configureModel applies generation settings using the SDK's setter methods.
func configureModel(model *genai.GenerativeModel, config *GenerationConfig) {
	maxTokens := defaultMaxTokens
	if config != nil {
		if config.Temperature != nil {
			model.SetTemperature(*config.Temperature)
		}
		if config.MaxTokens > 0 {
			maxTokens = config.MaxTokens
		}
		if config.JSONOutput {
			model.ResponseMIMEType = "application/json"
		}
	}
	model.SetMaxOutputTokens(int32(maxTokens))
}

// splitMessages separates the system instruction, the prior turns and the final
// user prompt. Only the first system message is used.
func splitMessages(messages []Message) (string, []*genai.Content, string, error) {
	var system string
	var turns []Message
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if system == "" {
				system = msg.Content
			}
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) == 0 {
		return "", nil, "", errors.New("at least one non-system message is required")
	}

	last := turns[len(turns)-1]
	if last.Role != RoleUser {
		return "", nil, "", fmt.Errorf("last message must have role %q, got %q", RoleUser, last.Role)
	}
	return system, toGeminiContentHistory(turns[:len(turns)-1]), last.Content, nil
}

// toGeminiContentHistory converts prior turns to the Gemini SDK's format.
func toGeminiContentHistory(messages []Message) []*genai.Content {
	var history []*genai.Content
	for _, msg := range messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

// parseGeminiResponse converts a Gemini API response into our internal GenerationResult.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	var contentBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			contentBuilder.WriteString(string(txt))
		}
	}

	result := &GenerationResult{Content: strings.TrimSpace(contentBuilder.String())}
	if result.Content == "" {
		return nil, errors.New("no response text from Gemini")
	}
	if resp.UsageMetadata != nil {
		result.Usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.Usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		result.Usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return result, nil
}
