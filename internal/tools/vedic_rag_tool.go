// In file: internal/tools/vedic_rag_tool.go
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Vedic Retrieval Adapter ---

// VedicRetrieval is the concrete RetrievalAdapter for the vedic knowledge
// base: an external passage-lookup service that returns ranked text chunks
// for a query.
//
// The API key is injected through the constructor rather than read from the
// process environment inside the adapter, which keeps the core testable
// without environment coupling.
type VedicRetrieval struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Statically verify that VedicRetrieval implements the RetrievalAdapter interface.
var _ RetrievalAdapter = (*VedicRetrieval)(nil)

// NewVedicRetrieval creates a new retrieval adapter for the given endpoint.
// Missing credentials surface as an HTTP error at call time, not here.
func NewVedicRetrieval(endpoint, apiKey string) *VedicRetrieval {
	return &VedicRetrieval{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// retrievalRequest is the JSON body the retrieval endpoint expects.
type retrievalRequest struct {
	Query string `json:"query"`
}

// retrievalResponse is the shape of a successful retrieval response.
type retrievalResponse struct {
	Chunks []RetrievedChunk `json:"chunks"`
}

// Retrieve looks up ranked passages for a query. A non-2xx response is fatal
// for the turn and the returned error carries the HTTP status.
func (vr *VedicRetrieval) Retrieve(ctx context.Context, query string) ([]RetrievedChunk, error) {
	payloadBytes, err := json.Marshal(retrievalRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal retrieval request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", vr.endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create retrieval request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+vr.apiKey)

	resp, err := vr.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call retrieval service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read retrieval response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("retrieval service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed retrievalResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse retrieval response: %w", err)
	}
	return parsed.Chunks, nil
}
