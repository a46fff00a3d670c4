// In file: internal/api/types.go

// Package api defines the wire-level data structures shared between the HTTP
// layer and the internal orchestration logic. Keeping these in one place gives
// the public contract a single source of truth, independent of how the
// internals evolve.
package api

// =================================================================================
// Conversation Messages
// =================================================================================

// Message is a single message in a conversation, as it appears on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Standard role strings used across the service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// =================================================================================
// Tool-Call Annotations
// =================================================================================

// AnnotationTypeToolCall is the only annotation type emitted by this service.
const AnnotationTypeToolCall = "tool_call"

// Annotation states. A tool call is first announced with StateCall (so clients
// can render an in-flight indicator) and later completed with StateResult
// carrying the serialized tool output under the same ToolCallID.
const (
	StateCall   = "call"
	StateResult = "result"
)

// Annotation is a machine-readable side-channel record attached to a
// conversation turn. Clients use it for progressive rendering, independent of
// the natural-language message stream.
type Annotation struct {
	// Type is always "tool_call" for records emitted by this service.
	Type string `json:"type"`
	// State is "call" while the tool is in flight and "result" once it completed.
	State string `json:"state"`
	// ToolCallID ties the call and result records of one execution together.
	ToolCallID string `json:"toolCallId"`
	// ToolName is the name of the tool that was invoked.
	ToolName string `json:"toolName"`
	// Args carries the serialized (JSON) parameters the tool was invoked with.
	Args string `json:"args"`
	// Result carries the serialized tool output. Only present once State is "result".
	Result string `json:"result,omitempty"`
}

// =================================================================================
// Orchestration Output
// =================================================================================

// OrchestrationResult is the externally visible outcome of one tool turn.
//
// Annotations is nil (serialized as JSON null) when nothing was recorded during
// the turn. Downstream consumers treat null and an empty list differently
// (skip vs. clear), so the distinction is preserved on purpose.
type OrchestrationResult struct {
	Annotations []Annotation `json:"annotations"`
	Messages    []Message    `json:"messages"`
}

// =================================================================================
// Chat Endpoint Contract
// =================================================================================

// ChatRequest is the body accepted by POST /api/v1/chat.
type ChatRequest struct {
	// Model selects the completion model used to choose a tool.
	Model string `json:"model"`
	// ToolMode enables the tool pipeline for this turn. When false the
	// completion service is never contacted.
	ToolMode bool `json:"tool_mode"`
	// Stream requests live (SSE) delivery of in-flight annotations.
	Stream bool `json:"stream,omitempty"`
	// Messages is the conversation history, oldest first.
	Messages []Message `json:"messages" binding:"required"`
}

// ChatResponse wraps the orchestration result with request metadata.
type ChatResponse struct {
	OrchestrationResult
	ModelUsed   string `json:"model_used"`
	LatencyMS   int64  `json:"latency_ms"`
	CacheStatus string `json:"cache_status,omitempty"`
}
