// In file: internal/llm/ollama_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// --- API Data Structures ---

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
}

// --- Main Client ---

// OllamaClient talks to a locally running Ollama server. Models served this
// way are the "lightweight/local variant" of the assistant: the orchestrator
// shrinks search result budgets accordingly.
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ CompletionClient = (*OllamaClient)(nil)

// NewOllamaClient creates a client for the given base URL, defaulting to the
// standard local port. No credentials are involved: Ollama is unauthenticated.
func NewOllamaClient(baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &OllamaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Complete performs a blocking, non-streaming chat request.
func (c *OllamaClient) Complete(ctx context.Context, modelID, systemPrompt string, history []Message) (string, error) {
	messages := make([]ollamaMessage, 0, len(history)+1)
	messages = append(messages, ollamaMessage{Role: string(RoleSystem), Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, ollamaMessage{Role: string(msg.Role), Content: msg.Content})
	}

	payloadBytes, err := json.Marshal(ollamaRequest{
		Model:    modelID,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal ollama response: %w", err)
	}
	return parsed.Message.Content, nil
}
