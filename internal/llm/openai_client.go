// In file: internal/llm/openai_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultOpenAIChatURL = "https://api.openai.com/v1/chat/completions"

// --- API Data Structures ---

// openAIRequest defines the top-level structure for a chat-completions call.
// Only the fields this gateway actually sends are modelled.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
}

// openAIMessage represents a single message in a conversation.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse is the structure of a successful response from the API.
type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// --- Main Client ---

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint.
// Pointing BaseURL at a different provider (OpenRouter, a vLLM deployment)
// works unchanged, since the wire format is the de-facto standard.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ CompletionClient = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    defaultOpenAIChatURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Complete performs a blocking completion request. Temperature is pinned to 0:
// tool selection should be as deterministic as the provider allows.
func (c *OpenAIClient) Complete(ctx context.Context, modelID, systemPrompt string, history []Message) (string, error) {
	messages := make([]openAIMessage, 0, len(history)+1)
	messages = append(messages, openAIMessage{Role: string(RoleSystem), Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, openAIMessage{Role: string(msg.Role), Content: msg.Content})
	}

	payloadBytes, err := json.Marshal(openAIRequest{
		Model:    modelID,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal openai request: %w", err)
	}

	body, err := c.doRequestWithRetry(ctx, payloadBytes)
	if err != nil {
		return "", err
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no choices returned from OpenAI")
	}
	return parsed.Choices[0].Message.Content, nil
}

// doRequestWithRetry performs the HTTP call with exponential backoff on
// transient failures. Client errors (4xx) are never retried.
func (c *OpenAIClient) doRequestWithRetry(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error
	delay := initialRetryDelay
	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", i+1, maxRetries, err)
			time.Sleep(delay)
			delay *= 2
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}
		lastErr = fmt.Errorf("openai API error (attempt %d/%d): status %d, body: %s", i+1, maxRetries, resp.StatusCode, string(body))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, lastErr
		}
		time.Sleep(delay)
		delay *= 2
	}
	return nil, lastErr
}
