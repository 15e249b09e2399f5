package nodesearch

import "fmt"

// Replacements maps placeholder tokens to their runtime values
type Replacements map[string]any

// NewReplacements builds the three token replacements. The node type list
// keeps the caller's order.
func NewReplacements(term string, nodeTypes []string, startingPath string) Replacements {
	types := make([]string, len(nodeTypes))
	copy(types, nodeTypes)

	return Replacements{
		TokenTerm:            term,
		TokenSearchNodeTypes: types,
		TokenStartingPoint:   startingPath,
	}
}

// Substitute returns a deep copy of template in which every string leaf equal
// to a replacement key is swapped for its value. Matching is exact: a leaf
// that merely contains a token is left alone. Maps with non-string keys are
// converted to map[string]any so the result can be JSON encoded.
func Substitute(template any, r Replacements) any {
	switch v := template.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = Substitute(value, r)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = Substitute(value, r)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, value := range v {
			out[i] = Substitute(value, r)
		}
		return out
	case string:
		if replacement, ok := r[v]; ok {
			return replacement
		}
		return v
	default:
		return v
	}
}
