// In file: internal/toolcall/schema.go
package toolcall

// ParamType enumerates the value types a tool parameter can declare. The
// extractor coerces raw tag text according to the declared type, and the
// orchestrator renders the same schema into the tool-selection prompt, so the
// two can never drift apart.
type ParamType string

const (
	ParamString     ParamType = "string"
	ParamInteger    ParamType = "integer"
	ParamEnum       ParamType = "enum"
	ParamStringList ParamType = "string_list"
)

// ParamSpec describes a single legal parameter of a tool invocation.
type ParamSpec struct {
	// Name is the tag name the model is expected to emit.
	Name string
	// Type drives coercion of the raw tag text.
	Type ParamType
	// Required is advisory: it is surfaced in the prompt so the model knows
	// which parameters matter, but absence is never treated as an error.
	Required bool
	// Description is shown to the model when the schema is rendered.
	Description string
	// Enum lists the allowed literal values for ParamEnum parameters.
	Enum []string
}

// SearchParamSchema returns the parameter schema shared by both tool paths.
// The descriptions are written for the model, not for humans: the LLM uses
// them to decide what to put in each tag.
func SearchParamSchema() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "query",
			Type:        ParamString,
			Required:    true,
			Description: "The search query or question to look up.",
		},
		{
			Name:        "max_results",
			Type:        ParamInteger,
			Description: "Maximum number of results to return.",
		},
		{
			Name:        "search_depth",
			Type:        ParamEnum,
			Enum:        []string{"basic", "advanced"},
			Description: "How thorough the search should be. One of: basic, advanced.",
		},
		{
			Name:        "include_domains",
			Type:        ParamStringList,
			Description: "Comma-separated list of domains to restrict the search to.",
		},
		{
			Name:        "exclude_domains",
			Type:        ParamStringList,
			Description: "Comma-separated list of domains to exclude from the search.",
		},
	}
}
