package rewrite

import "strings"

// replaceTree recursively substring-replaces search with replace inside
// a decoded JSON tree (as produced by encoding/json into any): maps are
// walked key-then-value, replacing inside keys as well as values;
// sequences are walked element-by-element; strings are replaced
// byte-wise; every other scalar (bool, float64, nil) passes through
// unchanged. Map entry order is not required to survive byte-exactly,
// only semantically.
func replaceTree(v any, search, replace string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			newKey := strings.ReplaceAll(k, search, replace)
			out[newKey] = replaceTree(val, search, replace)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = replaceTree(val, search, replace)
		}
		return out
	case string:
		return strings.ReplaceAll(t, search, replace)
	default:
		return t
	}
}
