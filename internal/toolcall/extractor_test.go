// In file: internal/toolcall/extractor_test.go
package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyTagMapIsParseFailure(t *testing.T) {
	got := Extract(TagMap{}, SearchParamSchema())
	assert.Equal(t, KindParseFailure, got.Kind)
}

func TestExtract_AbsentToolIsSkip(t *testing.T) {
	got := Extract(TagMap{"query": "something"}, SearchParamSchema())
	assert.Equal(t, KindSkip, got.Kind)
}

func TestExtract_EmptyToolIsSkip(t *testing.T) {
	got := Extract(TagMap{"tool": ""}, SearchParamSchema())
	assert.Equal(t, KindSkip, got.Kind)
}

func TestExtract_FullInvocation(t *testing.T) {
	tags := TagMap{
		"tool":            "search",
		"query":           "ancient temples of india",
		"max_results":     "5",
		"search_depth":    "advanced",
		"include_domains": "wikipedia.org, britannica.com",
		"exclude_domains": "pinterest.com",
	}

	got := Extract(tags, SearchParamSchema())
	require.Equal(t, KindInvocation, got.Kind)

	inv := got.Invocation
	assert.Equal(t, "search", inv.Tool)
	assert.Equal(t, "ancient temples of india", inv.Params.Query)
	require.NotNil(t, inv.Params.MaxResults)
	assert.Equal(t, 5, *inv.Params.MaxResults)
	assert.Equal(t, "advanced", inv.Params.SearchDepth)
	assert.Equal(t, []string{"wikipedia.org", "britannica.com"}, inv.Params.IncludeDomains)
	assert.Equal(t, []string{"pinterest.com"}, inv.Params.ExcludeDomains)
}

func TestExtract_IntegerCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want *int
	}{
		{"valid", "20", intPtr(20)},
		{"padded", " 7 ", intPtr(7)},
		{"not a number", "twenty", nil},
		{"float", "3.5", nil},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(TagMap{"tool": "search", "max_results": tc.raw}, SearchParamSchema())
			require.Equal(t, KindInvocation, got.Kind)
			if tc.want == nil {
				assert.Nil(t, got.Invocation.Params.MaxResults, "invalid numbers must be omitted, not zeroed")
			} else {
				require.NotNil(t, got.Invocation.Params.MaxResults)
				assert.Equal(t, *tc.want, *got.Invocation.Params.MaxResults)
			}
		})
	}
}

func TestExtract_EnumCoercion(t *testing.T) {
	for raw, want := range map[string]string{
		"basic":    "basic",
		"advanced": "advanced",
		"deep":     "", // not an allowed literal: omitted
		"BASIC":    "", // enum matching is exact
	} {
		got := Extract(TagMap{"tool": "search", "search_depth": raw}, SearchParamSchema())
		require.Equal(t, KindInvocation, got.Kind)
		assert.Equal(t, want, got.Invocation.Params.SearchDepth, "raw %q", raw)
	}
}

func TestExtract_ListCoercion(t *testing.T) {
	got := Extract(TagMap{"tool": "search", "include_domains": "a, b,,c"}, SearchParamSchema())
	require.Equal(t, KindInvocation, got.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, got.Invocation.Params.IncludeDomains)

	got = Extract(TagMap{"tool": "search", "exclude_domains": ""}, SearchParamSchema())
	require.Equal(t, KindInvocation, got.Kind)
	assert.Empty(t, got.Invocation.Params.ExcludeDomains)
	assert.NotNil(t, got.Invocation.Params.ExcludeDomains, "empty raw text must yield an empty list, not an absent one")
}

func TestExtract_UnknownTagsIgnored(t *testing.T) {
	tags := TagMap{
		"tool":       "vedic_rag",
		"query":      "what is dharma",
		"confidence": "0.93",
		"reasoning":  "the user asked a scripture question",
	}

	got := Extract(tags, SearchParamSchema())
	require.Equal(t, KindInvocation, got.Kind)
	assert.Equal(t, "vedic_rag", got.Invocation.Tool)
	assert.Equal(t, "what is dharma", got.Invocation.Params.Query)
}

func intPtr(n int) *int { return &n }
