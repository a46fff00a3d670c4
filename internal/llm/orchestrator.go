// In file: internal/llm/orchestrator.go
package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rahul-ks/vedic-assistant/internal/api"
	"github.com/rahul-ks/vedic-assistant/internal/toolcall"
	"github.com/rahul-ks/vedic-assistant/internal/tools"
)

// =================================================================================
// Tool Orchestrator
// =================================================================================
// The orchestrator owns one conversational turn of the tool pipeline:
// ask the completion model to choose a tool, recover a typed invocation from
// its tagged-text answer, dispatch the tool, and assemble the final result.
// Each run is independent and stateless apart from the supplied history, and
// strictly sequential: the completion call and the tool call each block until
// they finish. No cancellation beyond the caller's context, no retries.
// =================================================================================

// answerInstruction is appended as a trailing user message if and only if at
// least one tool produced a message, telling the model how to use what it got.
const answerInstruction = "Answer the user's question using the retrieved knowledge above. If the retrieved knowledge does not cover the question, say so."

// Orchestrator decides whether to run the tool pipeline for a turn and drives
// it end to end when it does.
type Orchestrator struct {
	dispatcher          *tools.Dispatcher
	cache               *ToolChoiceCache
	lightweightPrefixes []string
}

// NewOrchestrator creates an orchestrator. lightweightPrefixes lists model-ID
// prefixes that identify lightweight/local model variants, which get a smaller
// default search result budget.
func NewOrchestrator(dispatcher *tools.Dispatcher, cache *ToolChoiceCache, lightweightPrefixes []string) *Orchestrator {
	return &Orchestrator{
		dispatcher:          dispatcher,
		cache:               cache,
		lightweightPrefixes: lightweightPrefixes,
	}
}

// RunToolTurn executes the tool pipeline for one turn.
//
// When toolMode is disabled the completion service is never contacted and the
// result is the canonical "nothing happened" shape: nil annotations, empty
// messages. The same shape comes back when the model declines to pick a tool
// or its answer is unparseable; model flakiness is not an error.
//
// Adapter and completion failures propagate to the caller as a fatal failure
// of the turn. The returned cache status is "HIT", "MISS", or "" when the
// completion was never requested.
func (o *Orchestrator) RunToolTurn(ctx context.Context, client CompletionClient, history []api.Message, modelID string, toolMode bool, sink *tools.CollectorSink) (*api.OrchestrationResult, string, error) {
	if !toolMode {
		return emptyResult(), "", nil
	}

	defaultMaxResults := o.defaultMaxResults(modelID)
	systemPrompt := BuildToolSelectionPrompt(time.Now(), defaultMaxResults)

	cacheInput := historyCacheInput(history)
	completion, found := o.cache.Get(ctx, modelID, cacheInput)
	cacheStatus := "HIT"
	if !found {
		cacheStatus = "MISS"
		var err error
		completion, err = client.Complete(ctx, modelID, systemPrompt, toCompletionMessages(history))
		if err != nil {
			return nil, cacheStatus, fmt.Errorf("tool-choice completion failed: %w", err)
		}
		o.cache.Set(ctx, modelID, cacheInput, completion)
	}

	extraction := toolcall.Extract(toolcall.ParseToolCall(completion), toolcall.SearchParamSchema())
	switch extraction.Kind {
	case toolcall.KindParseFailure:
		log.Println("⚠️ Tool choice unparseable; proceeding without a tool.")
		return emptyResult(), cacheStatus, nil
	case toolcall.KindSkip:
		log.Println("Model selected no tool.")
		return emptyResult(), cacheStatus, nil
	}

	messages, err := o.dispatcher.Dispatch(ctx, extraction.Invocation, defaultMaxResults, sink)
	if err != nil {
		return nil, cacheStatus, err
	}

	if len(messages) > 0 {
		messages = append(messages, api.Message{Role: api.RoleUser, Content: answerInstruction})
	} else {
		messages = []api.Message{}
	}

	annotations := sink.Annotations()
	if len(annotations) == 0 {
		annotations = nil
	}
	return &api.OrchestrationResult{Annotations: annotations, Messages: messages}, cacheStatus, nil
}

// defaultMaxResults computes the search result budget for a model: the full
// default, or the lightweight one for local/small model variants.
func (o *Orchestrator) defaultMaxResults(modelID string) int {
	if o.isLightweightModel(modelID) {
		return tools.LightweightSearchMaxResults
	}
	return tools.DefaultSearchMaxResults
}

func (o *Orchestrator) isLightweightModel(modelID string) bool {
	lower := strings.ToLower(modelID)
	for _, prefix := range o.lightweightPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func emptyResult() *api.OrchestrationResult {
	return &api.OrchestrationResult{Annotations: nil, Messages: []api.Message{}}
}

// historyCacheInput flattens the conversation into a stable string for cache
// keying. The whole history participates: the same question after different
// context may legitimately warrant a different tool choice.
func historyCacheInput(history []api.Message) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role)
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// toCompletionMessages converts wire messages to the completion-client type.
func toCompletionMessages(history []api.Message) []Message {
	messages := make([]Message, len(history))
	for i, msg := range history {
		messages[i] = Message{Role: Role(msg.Role), Content: msg.Content}
	}
	return messages
}

// =================================================================================
// Tool-Selection Prompt
// =================================================================================

// BuildToolSelectionPrompt renders the system prompt that teaches the model
// the two tools, the shared parameter schema, and the tagged-text answer
// convention. The current date is embedded so the model can judge whether a
// question needs fresh information from the web.
func BuildToolSelectionPrompt(now time.Time, defaultMaxResults int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the tool-selection module of a vedic knowledge assistant. Today's date is %s.\n\n", now.Format("January 2, 2006"))
	b.WriteString("Decide whether answering the user's latest message requires one of these tools:\n")
	fmt.Fprintf(&b, "- %s: Search the web. Use for current events or facts outside the vedic scriptures.\n", tools.ToolSearch)
	fmt.Fprintf(&b, "- %s: Look up passages from the vedic scriptures knowledge base. Use for questions about the Vedas, Upanishads, and related texts.\n\n", tools.ToolVedicRAG)

	b.WriteString("Parameters:\n")
	for _, spec := range toolcall.SearchParamSchema() {
		optionality := "optional"
		if spec.Required {
			optionality = "required"
		}
		fmt.Fprintf(&b, "- %s (%s, %s): %s", spec.Name, spec.Type, optionality, spec.Description)
		if spec.Name == "max_results" {
			fmt.Fprintf(&b, " Defaults to %d.", defaultMaxResults)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Respond with exactly one block in this format and nothing else:
<tool_call>
  <tool>NAME</tool>
  <parameters>
    <query>...</query>
  </parameters>
</tool_call>

If no tool is needed, respond with:
<tool_call>
  <tool></tool>
</tool_call>
`)

	return b.String()
}
