// In file: internal/tools/dispatcher.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/rahul-ks/vedic-assistant/internal/api"
	"github.com/rahul-ks/vedic-assistant/internal/toolcall"
)

// =================================================================================
// Dispatch State Machine
// =================================================================================
// Each invocation walks IDLE → SELECTED → CALLING → RESULTED, or short-circuits
// to SKIPPED when no (or no known) tool was selected. The states are explicit
// so the call-before-result ordering guarantee is visible in the code rather
// than implied by it.
// =================================================================================

type dispatchState int

const (
	stateIdle dispatchState = iota
	stateSelected
	stateCalling
	stateResulted
	stateSkipped
)

func (s dispatchState) String() string {
	switch s {
	case stateIdle:
		return "IDLE"
	case stateSelected:
		return "SELECTED"
	case stateCalling:
		return "CALLING"
	case stateResulted:
		return "RESULTED"
	case stateSkipped:
		return "SKIPPED"
	}
	return "UNKNOWN"
}

// The search path always runs at basic depth. The schema still accepts a
// search_depth parameter so the prompt and the grammar stay aligned, but this
// dispatch path pins it.
const searchDepthBasic = "basic"

// vedicKnowledgeLabel prefixes the assistant message carrying retrieved chunks.
const vedicKnowledgeLabel = "Relevant knowledge retrieved from the vedic scriptures database:"

// searchArgs is the serialized parameter set recorded on search annotations.
type searchArgs struct {
	Query          string   `json:"query"`
	MaxResults     int      `json:"max_results"`
	SearchDepth    string   `json:"search_depth"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains"`
}

// ragArgs is the serialized parameter set recorded on retrieval annotations.
type ragArgs struct {
	Query string `json:"query"`
}

// Dispatcher selects and runs at most one tool adapter per invocation and
// normalizes the outcome into annotation records and conversation messages.
type Dispatcher struct {
	search    SearchAdapter
	retrieval RetrievalAdapter
}

// NewDispatcher wires the dispatcher to its two tool adapters.
func NewDispatcher(search SearchAdapter, retrieval RetrievalAdapter) *Dispatcher {
	return &Dispatcher{
		search:    search,
		retrieval: retrieval,
	}
}

// Dispatch runs the state machine for one typed invocation.
//
// defaultMaxResults is the search result budget to use when the model did not
// supply one; the orchestrator computes it from the active model (20, or 5
// for lightweight/local variants). Annotations are emitted through the sink;
// produced conversation messages are returned.
//
// Adapter failures are not caught here: they propagate to the caller as a
// fatal failure of the turn, with no partial result annotation emitted.
func (d *Dispatcher) Dispatch(ctx context.Context, inv toolcall.Invocation, defaultMaxResults int, sink AnnotationSink) ([]api.Message, error) {
	state := stateIdle

	if inv.Tool == "" {
		state = stateSkipped
		log.Printf("Dispatch: %s (no tool selected)", state)
		return nil, nil
	}

	switch inv.Tool {
	case ToolSearch:
		state = stateSelected
		log.Printf("Dispatch: %s tool=%s", state, ToolSearch)
		return d.dispatchSearch(ctx, inv.Params, defaultMaxResults, sink)
	case ToolVedicRAG:
		state = stateSelected
		log.Printf("Dispatch: %s tool=%s", state, ToolVedicRAG)
		return d.dispatchVedicRAG(ctx, inv.Params, sink)
	default:
		// The model hallucinated a tool name. Not an error: no annotation,
		// no message, the turn simply proceeds without a tool.
		state = stateSkipped
		log.Printf("⚠️ Dispatch: %s (unknown tool %q)", state, inv.Tool)
		return nil, nil
	}
}

// dispatchSearch runs the web search path. The call-state annotation is
// emitted before the adapter runs so the transport can show an in-flight
// indicator; the result-state annotation re-uses the same toolCallId.
func (d *Dispatcher) dispatchSearch(ctx context.Context, params toolcall.Params, defaultMaxResults int, sink AnnotationSink) ([]api.Message, error) {
	id := uuid.NewString()

	maxResults := defaultMaxResults
	if params.MaxResults != nil {
		maxResults = *params.MaxResults
	}
	args := searchArgs{
		Query:          params.Query,
		MaxResults:     maxResults,
		SearchDepth:    searchDepthBasic,
		IncludeDomains: emptyIfNil(params.IncludeDomains),
		ExcludeDomains: emptyIfNil(params.ExcludeDomains),
	}
	argsJSON, _ := json.Marshal(args)

	sink.WriteLive(api.Annotation{
		Type:       api.AnnotationTypeToolCall,
		State:      api.StateCall,
		ToolCallID: id,
		ToolName:   ToolSearch,
		Args:       string(argsJSON),
	})

	state := stateCalling
	log.Printf("🔎 Dispatch: %s search (id=%s, query=%q, max_results=%d)", state, id, args.Query, maxResults)
	result, err := d.search.Search(ctx, args.Query, maxResults, searchDepthBasic, args.IncludeDomains, args.ExcludeDomains)
	if err != nil {
		return nil, fmt.Errorf("search tool failed: %w", err)
	}

	state = stateResulted
	log.Printf("✅ Dispatch: %s search (id=%s)", state, id)
	sink.WriteMessage(api.Annotation{
		Type:       api.AnnotationTypeToolCall,
		State:      api.StateResult,
		ToolCallID: id,
		ToolName:   ToolSearch,
		Args:       string(argsJSON),
		Result:     string(result),
	})

	return []api.Message{{Role: api.RoleAssistant, Content: string(result)}}, nil
}

// dispatchVedicRAG runs the retrieval path. Unlike search, this path reports
// only the final result state: no in-flight annotation is emitted.
func (d *Dispatcher) dispatchVedicRAG(ctx context.Context, params toolcall.Params, sink AnnotationSink) ([]api.Message, error) {
	id := uuid.NewString()
	argsJSON, _ := json.Marshal(ragArgs{Query: params.Query})

	state := stateCalling
	log.Printf("📖 Dispatch: %s vedic_rag (id=%s, query=%q)", state, id, params.Query)
	chunks, err := d.retrieval.Retrieve(ctx, params.Query)
	if err != nil {
		return nil, fmt.Errorf("vedic_rag tool failed: %w", err)
	}

	state = stateResulted
	log.Printf("✅ Dispatch: %s vedic_rag (id=%s, chunks=%d)", state, id, len(chunks))
	resultJSON, _ := json.Marshal(chunks)
	sink.WriteMessage(api.Annotation{
		Type:       api.AnnotationTypeToolCall,
		State:      api.StateResult,
		ToolCallID: id,
		ToolName:   ToolVedicRAG,
		Args:       string(argsJSON),
		Result:     string(resultJSON),
	})

	content := vedicKnowledgeLabel + "\n\n" + FormatChunks(chunks)
	return []api.Message{{Role: api.RoleAssistant, Content: content}}, nil
}

// FormatChunks renders retrieved passages as a sequence of labeled chunks:
//
//	Chunk 1:
//	<text>
//
//	Chunk 2:
//	<text>
func FormatChunks(chunks []RetrievedChunk) string {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("Chunk %d:\n%s", i+1, chunk.Text))
	}
	return strings.Join(parts, "\n\n")
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
