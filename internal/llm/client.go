// In file: internal/llm/client.go

// Package llm contains the completion clients the assistant can ask to select
// a tool, the Redis-backed tool-choice cache, and the orchestrator that ties
// parsing, extraction, and dispatch together for one conversational turn.
package llm

import (
	"context"
)

// =================================================================================
// Core Data Structures
// =================================================================================

// Role represents the originator of a message in a conversation.
// Using a defined type and constants prevents typos and improves code clarity.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =================================================================================
// Completion Client Interface
// =================================================================================

// CompletionClient is the universal interface all completion providers
// implement. The orchestrator treats the provider as an opaque text-completion
// service: one blocking request, free text back. Tool selection happens
// entirely through the tagged-text convention in the returned text, so the
// clients carry no tool-calling wire formats of their own.
type CompletionClient interface {
	// Complete performs a standard, blocking completion request.
	//
	// modelID names the model to use; providers that bind a model at
	// construction time (Gemini) ignore it. systemPrompt is sent as the
	// system message, followed by the conversation history oldest-first.
	Complete(ctx context.Context, modelID, systemPrompt string, history []Message) (string, error)
}
