// In file: internal/tools/search_tool.go
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

// --- Web Search Adapter (Tavily) ---

const tavilyAPIURL = "https://api.tavily.com/search"

// TavilySearch is the concrete SearchAdapter backed by the Tavily search API.
// It holds its own configured HTTP client so a slow provider can never hang a
// turn indefinitely.
type TavilySearch struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Statically verify that TavilySearch implements the SearchAdapter interface.
var _ SearchAdapter = (*TavilySearch)(nil)

// NewTavilySearch creates a new search adapter. A missing API key is not
// rejected here: per the gateway's error model, configuration absence
// manifests as an adapter failure at call time, not eagerly.
func NewTavilySearch(apiKey string) *TavilySearch {
	return &TavilySearch{
		apiKey:  apiKey,
		baseURL: tavilyAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// tavilyRequest is the JSON body the Tavily search endpoint expects.
type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	MaxResults     int      `json:"max_results"`
	SearchDepth    string   `json:"search_depth"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

// Search runs one web search and returns the provider's JSON response as-is.
// The dispatcher treats the payload as opaque serialized data, so there is no
// point decoding and re-encoding it here.
func (ts *TavilySearch) Search(ctx context.Context, query string, maxResults int, depth string, includeDomains, excludeDomains []string) (json.RawMessage, error) {
	payload := tavilyRequest{
		APIKey:         ts.apiKey,
		Query:          query,
		MaxResults:     maxResults,
		SearchDepth:    depth,
		IncludeDomains: includeDomains,
		ExcludeDomains: excludeDomains,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ts.baseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Vedic-Assistant/1.0")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.RawMessage(body), nil
}
