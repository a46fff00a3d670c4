// In file: cmd/assistant/handler.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/rahul-ks/vedic-assistant/internal/api"
	"github.com/rahul-ks/vedic-assistant/internal/llm"
	"github.com/rahul-ks/vedic-assistant/internal/tools"

	"github.com/gin-gonic/gin"
)

// =================================================================================
// Chat Handler
// =================================================================================
// The handler is a thin transport layer over the orchestrator. It binds the
// request, selects a completion client for the requested model, runs one
// tool-augmented turn, and returns the orchestration result.
//
// Two delivery modes:
//  1. **JSON:** a single response carrying the annotations and messages.
//  2. **SSE:**  tool-call annotations are pushed live as they occur, then the
//     full result is sent as a final event.
// =================================================================================

type ChatHandler struct {
	clients      map[string]llm.CompletionClient
	orchestrator *llm.Orchestrator
	config       *AppConfig
}

func NewChatHandler(clients map[string]llm.CompletionClient, orchestrator *llm.Orchestrator, config *AppConfig) *ChatHandler {
	return &ChatHandler{
		clients:      clients,
		orchestrator: orchestrator,
		config:       config,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	startTime := time.Now()
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	modelID := req.Model
	if modelID == "" {
		modelID = h.config.Models.DefaultModel
	}
	client, ok := h.clients[modelID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model '" + modelID + "' is not available or enabled."})
		return
	}

	log.Printf("--- New Chat Turn (Model: %s, ToolMode: %v, Messages: %d) ---", modelID, req.ToolMode, len(req.Messages))

	if req.Stream {
		h.handleStreaming(c, client, req, modelID, startTime)
		return
	}

	sink := tools.NewCollectorSink(nil)
	result, cacheStatus, err := h.orchestrator.RunToolTurn(c.Request.Context(), client, req.Messages, modelID, req.ToolMode, sink)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.ChatResponse{
		OrchestrationResult: *result,
		ModelUsed:           modelID,
		LatencyMS:           time.Since(startTime).Milliseconds(),
		CacheStatus:         cacheStatus,
	})
}

// handleStreaming delivers tool-call annotations over SSE as the dispatcher
// emits them, followed by a terminal "result" event with the full turn.
func (h *ChatHandler) handleStreaming(c *gin.Context, client llm.CompletionClient, req api.ChatRequest, modelID string, startTime time.Time) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sink := tools.NewCollectorSink(func(a api.Annotation) {
		c.SSEvent("annotation", a)
		c.Writer.Flush()
	})

	result, cacheStatus, err := h.orchestrator.RunToolTurn(c.Request.Context(), client, req.Messages, modelID, req.ToolMode, sink)
	if err != nil {
		c.SSEvent("error", gin.H{"error": err.Error()})
		c.Writer.Flush()
		return
	}

	c.SSEvent("result", api.ChatResponse{
		OrchestrationResult: *result,
		ModelUsed:           modelID,
		LatencyMS:           time.Since(startTime).Milliseconds(),
		CacheStatus:         cacheStatus,
	})
	c.Writer.Flush()
}
