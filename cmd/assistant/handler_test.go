// In file: cmd/assistant/handler_test.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rahul-ks/vedic-assistant/internal/api"
	"github.com/rahul-ks/vedic-assistant/internal/llm"
	"github.com/rahul-ks/vedic-assistant/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletion struct {
	response string
}

func (s *stubCompletion) Complete(_ context.Context, _, _ string, _ []llm.Message) (string, error) {
	return s.response, nil
}

type stubRetrieval struct{}

func (s *stubRetrieval) Retrieve(_ context.Context, _ string) ([]tools.RetrievedChunk, error) {
	return []tools.RetrievedChunk{{Text: "sloka text", Score: 0.9}}, nil
}

type stubSearch struct{}

func (s *stubSearch) Search(_ context.Context, _ string, _ int, _ string, _, _ []string) (json.RawMessage, error) {
	return json.RawMessage(`{"results":[]}`), nil
}

func newTestRouter(completion llm.CompletionClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dispatcher := tools.NewDispatcher(&stubSearch{}, &stubRetrieval{})
	orchestrator := llm.NewOrchestrator(dispatcher, llm.NewToolChoiceCache(nil), []string{"llama"})
	cfg := &AppConfig{Models: &ModelConfig{DefaultModel: "gpt-4o"}}
	handler := NewChatHandler(map[string]llm.CompletionClient{"gpt-4o": completion}, orchestrator, cfg)

	engine := gin.New()
	engine.POST("/api/v1/chat", handler.HandleChat)
	return engine
}

func postChat(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat_ToolTurn(t *testing.T) {
	completion := &stubCompletion{response: "<tool_call><tool>vedic_rag</tool><query>dharma</query></tool_call>"}
	engine := newTestRouter(completion)

	rec := postChat(t, engine, `{"tool_mode":true,"messages":[{"role":"user","content":"What is dharma?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "gpt-4o", resp.ModelUsed)
	assert.Equal(t, "MISS", resp.CacheStatus)
	require.Len(t, resp.Annotations, 1)
	assert.Equal(t, api.StateResult, resp.Annotations[0].State)
	require.Len(t, resp.Messages, 2)
	assert.Contains(t, resp.Messages[0].Content, "sloka text")
	assert.Equal(t, api.RoleUser, resp.Messages[1].Role)
}

func TestHandleChat_StreamingDeliversAnnotationBeforeResult(t *testing.T) {
	completion := &stubCompletion{response: "<tool_call><tool>search</tool><parameters><query>vedas</query></parameters></tool_call>"}
	engine := newTestRouter(completion)

	rec := postChat(t, engine, `{"tool_mode":true,"stream":true,"messages":[{"role":"user","content":"vedas?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	annotationAt := strings.Index(body, "event:annotation")
	resultAt := strings.Index(body, "event:result")
	require.GreaterOrEqual(t, annotationAt, 0, "the in-flight call annotation must be pushed as an SSE event")
	require.GreaterOrEqual(t, resultAt, 0, "the full turn must arrive as a terminal result event")
	assert.Less(t, annotationAt, resultAt, "the live annotation must precede the result event")
}

func TestHandleChat_ToolModeDisabled(t *testing.T) {
	engine := newTestRouter(&stubCompletion{response: "should never be used"})

	rec := postChat(t, engine, `{"tool_mode":false,"messages":[{"role":"user","content":"hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["annotations"]))
	assert.Equal(t, "[]", string(raw["messages"]))
}

func TestHandleChat_MissingMessages(t *testing.T) {
	engine := newTestRouter(&stubCompletion{})

	rec := postChat(t, engine, `{"tool_mode":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_UnknownModel(t *testing.T) {
	engine := newTestRouter(&stubCompletion{})

	rec := postChat(t, engine, `{"model":"claude-3","tool_mode":true,"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
