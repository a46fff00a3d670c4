// In file: internal/tools/search_tool_test.go
package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilySearch_Search(t *testing.T) {
	var gotBody tavilyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"Vedic period","url":"https://example.org"}]}`))
	}))
	defer server.Close()

	ts := NewTavilySearch("test-key")
	ts.baseURL = server.URL

	result, err := ts.Search(context.Background(), "vedic period", 5, "basic", []string{"example.org"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotBody.APIKey)
	assert.Equal(t, "vedic period", gotBody.Query)
	assert.Equal(t, 5, gotBody.MaxResults)
	assert.Equal(t, "basic", gotBody.SearchDepth)
	assert.Equal(t, []string{"example.org"}, gotBody.IncludeDomains)
	assert.JSONEq(t, `{"results":[{"title":"Vedic period","url":"https://example.org"}]}`, string(result))
}

func TestTavilySearch_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	ts := NewTavilySearch("")
	ts.baseURL = server.URL

	_, err := ts.Search(context.Background(), "q", 5, "basic", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
