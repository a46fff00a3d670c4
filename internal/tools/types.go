// In file: internal/tools/types.go

// Package tools contains the tool adapters the assistant can invoke on behalf
// of the model (web search and the vedic retrieval service) and the dispatcher
// that selects, runs, and normalizes exactly one of them per turn.
package tools

import (
	"context"
	"encoding/json"

	"github.com/rahul-ks/vedic-assistant/internal/api"
)

// Names of the tools the dispatcher knows how to run. The model selects one of
// these by emitting it inside a <tool> tag; anything else is treated as a
// hallucinated tool name and ignored.
const (
	ToolSearch   = "search"
	ToolVedicRAG = "vedic_rag"
)

// Default result counts for the search path. The smaller default is used when
// the active completion model is a lightweight/local variant, which cannot
// digest large result sets.
const (
	DefaultSearchMaxResults     = 20
	LightweightSearchMaxResults = 5
)

// SearchAdapter is the contract for the web search provider. The returned
// payload is already serialized; the dispatcher attaches it verbatim to the
// result annotation and the follow-up assistant message.
type SearchAdapter interface {
	Search(ctx context.Context, query string, maxResults int, depth string, includeDomains, excludeDomains []string) (json.RawMessage, error)
}

// RetrievedChunk is one scored passage returned by the retrieval service.
type RetrievedChunk struct {
	Text  string  `json:"text"`
	Score float64 `json:"score,omitempty"`
}

// RetrievalAdapter is the contract for the domain-specific knowledge base
// lookup: a query in, ranked text chunks out.
type RetrievalAdapter interface {
	Retrieve(ctx context.Context, query string) ([]RetrievedChunk, error)
}

// AnnotationSink receives the annotation records produced during a dispatch.
//
// WriteLive delivers a progressive, in-flight record (the "call" state of the
// search path) so the transport can show a spinner before the tool finishes.
// WriteMessage delivers a durable record that belongs with the returned
// message list. For any one tool call, the live write strictly precedes the
// message write with the same toolCallId.
type AnnotationSink interface {
	WriteLive(a api.Annotation)
	WriteMessage(a api.Annotation)
}

// CollectorSink is the standard AnnotationSink: it records every annotation in
// emission order (live and durable alike) and optionally forwards live ones to
// a progressive transport such as an SSE stream.
type CollectorSink struct {
	forwardLive func(api.Annotation)
	annotations []api.Annotation
}

var _ AnnotationSink = (*CollectorSink)(nil)

// NewCollectorSink creates a sink. forwardLive may be nil when the caller has
// no progressive transport (plain JSON responses).
func NewCollectorSink(forwardLive func(api.Annotation)) *CollectorSink {
	return &CollectorSink{forwardLive: forwardLive}
}

func (s *CollectorSink) WriteLive(a api.Annotation) {
	s.annotations = append(s.annotations, a)
	if s.forwardLive != nil {
		s.forwardLive(a)
	}
}

func (s *CollectorSink) WriteMessage(a api.Annotation) {
	s.annotations = append(s.annotations, a)
}

// Annotations returns everything recorded so far, in emission order. The
// result is nil when nothing was recorded, which callers rely on to produce
// the JSON-null "nothing happened" shape.
func (s *CollectorSink) Annotations() []api.Annotation {
	return s.annotations
}
