// In file: internal/toolcall/parser.go

// Package toolcall recovers structured tool invocations from the semi-structured
// tagged text that a completion model produces when asked to pick a tool.
//
// The tagged-text convention is a brittle, model-dependent micro-protocol, so
// the grammar is isolated here: the parser knows nothing about tool semantics,
// and the rest of the system never touches raw model text. Swapping the
// convention (e.g. for a JSON-based one) only touches this package.
package toolcall

import (
	"regexp"
	"strings"
)

// TagMap is a flat mapping of tag name to raw (trimmed) string value, built
// from one model response and discarded after extraction. Keys are whatever
// tags appear in the source text; unknown tags are retained here but ignored
// by the extractor.
type TagMap map[string]string

// tagOpenRegex matches an opening tag like <tool> or <max_results>.
// Matching is case-sensitive: models are prompted with exact tag names.
var tagOpenRegex = regexp.MustCompile(`<([A-Za-z0-9_]+)>`)

// ParseToolCall scans a model response for a <tool_call> block and returns the
// tags found inside it.
//
// Model output is inherently unreliable, so every malformation degrades
// gracefully instead of failing: a missing or unclosed <tool_call> wrapper
// yields an empty TagMap, an unclosed inner tag is skipped, and when a tag
// appears more than once the last complete occurrence wins (models sometimes
// repeat themselves). The function is pure; calling it twice on the same text
// yields identical results.
func ParseToolCall(text string) TagMap {
	tags := make(TagMap)

	body, ok := lastTagBody(text, "tool_call")
	if !ok {
		return tags
	}

	collectTags(body, tags)
	return tags
}

// lastTagBody returns the trimmed body of the last complete <name>...</name>
// pair in s. Occurrences without a closing tag are ignored.
func lastTagBody(s, name string) (string, bool) {
	open := "<" + name + ">"
	closing := "</" + name + ">"

	var body string
	found := false
	rest := s
	for {
		i := strings.Index(rest, open)
		if i < 0 {
			break
		}
		rest = rest[i+len(open):]
		j := strings.Index(rest, closing)
		if j < 0 {
			break
		}
		body = strings.TrimSpace(rest[:j])
		found = true
		rest = rest[j+len(closing):]
	}
	return body, found
}

// collectTags records every complete tag pair found in s into dst. Later
// occurrences of the same tag overwrite earlier ones, which is what gives the
// parser its last-occurrence-wins behavior.
func collectTags(s string, dst TagMap) {
	for _, m := range tagOpenRegex.FindAllStringSubmatchIndex(s, -1) {
		name := s[m[2]:m[3]]
		closing := "</" + name + ">"
		j := strings.Index(s[m[1]:], closing)
		if j < 0 {
			// Opening tag with no close. Skip it rather than guessing a body.
			continue
		}
		dst[name] = strings.TrimSpace(s[m[1] : m[1]+j])
	}
}
