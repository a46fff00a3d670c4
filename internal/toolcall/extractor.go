// In file: internal/toolcall/extractor.go
package toolcall

import (
	"strconv"
	"strings"
)

// =================================================================================
// Extraction Result
// =================================================================================

// Kind discriminates the three possible outcomes of an extraction. The
// original duck-typed design mixed an empty-string "no tool" sentinel with a
// null "total parse failure" signal; modelling them as an explicit tagged
// variant removes the ambiguity for callers.
type Kind int

const (
	// KindParseFailure means the parse stage produced no usable structure at
	// all (empty TagMap). Callers treat it as a skip, but the distinction lets
	// them report total parse failure separately if they care.
	KindParseFailure Kind = iota
	// KindSkip means the model deliberately (or effectively) selected no tool.
	KindSkip
	// KindInvocation means a named tool was selected; Invocation is populated.
	KindInvocation
)

// Params is the typed parameter bag of a tool invocation. Every field is
// optional; absence means "use the caller's or tool's default", never an error.
type Params struct {
	Query string `json:"query,omitempty"`
	// MaxResults is a pointer so an absent value is distinguishable from zero.
	MaxResults     *int     `json:"max_results,omitempty"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

// Invocation is a typed tool invocation recovered from model output. An empty
// Tool is the canonical "no tool selected" sentinel. Invocations are built
// once per turn and never mutated afterwards.
type Invocation struct {
	Tool   string `json:"tool"`
	Params Params `json:"parameters"`
}

// Extraction is the tagged result of interpreting a TagMap. Invocation is only
// meaningful when Kind is KindInvocation.
type Extraction struct {
	Kind       Kind
	Invocation Invocation
}

// =================================================================================
// Extractor
// =================================================================================

// Extract interprets a TagMap against a parameter schema and produces a typed
// invocation, or one of the two skip variants.
//
// Coercion rules, per declared type:
//   - integer: parsed with strconv.Atoi; unparseable text means the field is
//     omitted, never zero.
//   - enum: passed through only when it matches an allowed literal value.
//   - string_list: split on commas, segments trimmed, empty segments dropped.
//   - string: taken as-is (already trimmed by the parser).
//
// Tags that are not in the schema are ignored silently.
func Extract(tags TagMap, schema []ParamSpec) Extraction {
	if len(tags) == 0 {
		return Extraction{Kind: KindParseFailure}
	}

	tool := tags["tool"]
	if tool == "" {
		return Extraction{Kind: KindSkip}
	}

	inv := Invocation{Tool: tool}
	for _, spec := range schema {
		raw, ok := tags[spec.Name]
		if !ok {
			continue
		}
		applyParam(&inv.Params, spec, raw)
	}
	return Extraction{Kind: KindInvocation, Invocation: inv}
}

// applyParam coerces one raw tag value by its declared type and assigns it to
// the matching field of the parameter bag. Coercion failures drop the field.
func applyParam(p *Params, spec ParamSpec, raw string) {
	switch spec.Type {
	case ParamInteger:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		if spec.Name == "max_results" {
			p.MaxResults = &n
		}
	case ParamEnum:
		if !containsString(spec.Enum, raw) {
			return
		}
		if spec.Name == "search_depth" {
			p.SearchDepth = raw
		}
	case ParamStringList:
		list := splitCommaList(raw)
		switch spec.Name {
		case "include_domains":
			p.IncludeDomains = list
		case "exclude_domains":
			p.ExcludeDomains = list
		}
	case ParamString:
		if spec.Name == "query" {
			p.Query = raw
		}
	}
}

// splitCommaList turns comma-separated raw text into an ordered list of
// trimmed, non-empty segments. An empty input yields an empty list.
func splitCommaList(raw string) []string {
	list := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		list = append(list, part)
	}
	return list
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
