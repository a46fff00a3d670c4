// In file: internal/tools/vedic_rag_tool_test.go
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

func TestVedicRetrieval_Retrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var body retrievalRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what is moksha", body.Query)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chunks":[{"text":"Moksha is liberation.","score":0.95},{"text":"It ends the cycle of rebirth.","score":0.9}]}`))
	}))
	defer server.Close()

	vr := NewVedicRetrieval(server.URL, "secret-token")
	chunks, err := vr.Retrieve(context.Background(), "what is moksha")
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "Moksha is liberation.", chunks[0].Text)
	assert.InDelta(t, 0.95, chunks[0].Score, 1e-9)
}

func TestVedicRetrieval_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream index offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	vr := NewVedicRetrieval(server.URL, "secret-token")
	_, err := vr.Retrieve(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestVedicRetrieval_EmptyChunksIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chunks":[]}`))
	}))
	defer server.Close()

	vr := NewVedicRetrieval(server.URL, "k")
	chunks, err := vr.Retrieve(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
