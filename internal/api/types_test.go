// In file: internal/api/types_test.go
package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotation_CallResultRoundTrip(t *testing.T) {
	call := Annotation{
		Type:       AnnotationTypeToolCall,
		State:      StateCall,
		ToolCallID: "abc-123",
		ToolName:   "search",
		Args:       `{"query":"ancient temples"}`,
	}

	callJSON, err := json.Marshal(call)
	require.NoError(t, err)
	assert.NotContains(t, string(callJSON), `"result"`, "call state must not carry a result field")

	var decoded Annotation
	require.NoError(t, json.Unmarshal(callJSON, &decoded))
	assert.Equal(t, call, decoded)

	// The result record reuses the same id with the state flipped and the
	// payload attached.
	result := decoded
	result.State = StateResult
	result.Result = `{"results":[]}`

	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	var decodedResult Annotation
	require.NoError(t, json.Unmarshal(resultJSON, &decodedResult))
	assert.Equal(t, call.ToolCallID, decodedResult.ToolCallID)
	assert.Equal(t, StateResult, decodedResult.State)
	assert.Equal(t, `{"results":[]}`, decodedResult.Result)
}

func TestOrchestrationResult_NullVersusEmptyAnnotations(t *testing.T) {
	skipped := OrchestrationResult{Annotations: nil, Messages: []Message{}}
	data, err := json.Marshal(skipped)
	require.NoError(t, err)
	assert.JSONEq(t, `{"annotations":null,"messages":[]}`, string(data))

	cleared := OrchestrationResult{Annotations: []Annotation{}, Messages: []Message{}}
	data, err = json.Marshal(cleared)
	require.NoError(t, err)
	assert.JSONEq(t, `{"annotations":[],"messages":[]}`, string(data))
}
