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

// GeminiClient is the completion client for Google's Gemini models. The model
// is bound at construction (the SDK hands out per-model handles), so the
// modelID argument of Complete is ignored.
type GeminiClient struct {
	model *genai.GenerativeModel
}

var _ CompletionClient = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelID)
	model.SetTemperature(0)
	return &GeminiClient{model: model}, nil
}

// Complete performs a standard, blocking request to the Gemini API.
func (c *GeminiClient) Complete(ctx context.Context, _ string, systemPrompt string, history []Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("conversation history is empty")
	}

	c.model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	chat := c.model.StartChat()
	chat.History = toGeminiContentHistory(history[:len(history)-1])

	lastMessage := history[len(history)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(lastMessage.Content))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no candidates returned from Gemini")
	}
	var contentBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			contentBuilder.WriteString(string(txt))
		}
	}
	return contentBuilder.String(), nil
}

// toGeminiContentHistory converts conversation messages to the SDK's content
// format. Gemini uses "model" where everyone else says "assistant".
func toGeminiContentHistory(messages []Message) []*genai.Content {
	geminiHistory := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		geminiHistory = append(geminiHistory, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return geminiHistory
}
