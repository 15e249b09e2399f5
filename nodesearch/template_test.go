package nodesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteReplacesTokensAtAnyDepth(t *testing.T) {
	template := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"query_string": map[string]any{"query": TokenTerm}},
					map[string]any{"terms": map[string]any{"neos_type": TokenSearchNodeTypes}},
					map[string]any{"prefix": map[string]any{"__path": TokenStartingPoint}},
				},
			},
		},
		"size": 20,
	}

	got := Substitute(template, NewReplacements("Sommerfest", []string{"B", "A"}, "/sites/acme"))

	want := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"query_string": map[string]any{"query": "Sommerfest"}},
					map[string]any{"terms": map[string]any{"neos_type": []string{"B", "A"}}},
					map[string]any{"prefix": map[string]any{"__path": "/sites/acme"}},
				},
			},
		},
		"size": 20,
	}
	assert.Equal(t, want, got)

	// the template itself is untouched
	must := template["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	assert.Equal(t, TokenTerm, must[0].(map[string]any)["query_string"].(map[string]any)["query"])
}

func TestSubstituteIsExactMatchOnly(t *testing.T) {
	template := map[string]any{
		"contains": "prefix " + TokenTerm,
		"lower":    "argument_term",
		"exact":    TokenTerm,
		"number":   3.5,
		"flag":     true,
		"nothing":  nil,
	}

	got := Substitute(template, NewReplacements("x", nil, "/")).(map[string]any)
	assert.Equal(t, "prefix "+TokenTerm, got["contains"])
	assert.Equal(t, "argument_term", got["lower"])
	assert.Equal(t, "x", got["exact"])
	assert.Equal(t, 3.5, got["number"])
	assert.Equal(t, true, got["flag"])
	assert.Nil(t, got["nothing"])
}

func TestSubstituteIsIdempotentWithoutTokens(t *testing.T) {
	template := map[string]any{"a": []any{"b", map[string]any{"c": 1}}, "d": "e"}
	r := NewReplacements("t", []string{"x"}, "/")

	once := Substitute(template, r)
	assert.Equal(t, template, once)
	assert.Equal(t, once, Substitute(once, r))
}

func TestSubstituteConvertsGenericMaps(t *testing.T) {
	template := map[string]any{
		"query": map[any]any{"match": map[any]any{"title": TokenTerm}, 1: "one"},
	}

	got := Substitute(template, NewReplacements("Straße", nil, "/")).(map[string]any)
	assert.Equal(t, map[string]any{
		"match": map[string]any{"title": "Straße"},
		"1":     "one",
	}, got["query"])
}

func TestNewReplacementsCopiesNodeTypes(t *testing.T) {
	types := []string{"A", "B"}
	r := NewReplacements("t", types, "/p")
	types[0] = "changed"

	assert.Equal(t, []string{"A", "B"}, r[TokenSearchNodeTypes])
	assert.Equal(t, []string{}, NewReplacements("t", nil, "/")[TokenSearchNodeTypes])
}
