package rewrite

import (
	"bytes"
	"encoding/json"
)

// rewriteJSON decodes payload as JSON, recursively replaces search with
// replace inside strings and keys, and re-encodes with no forward-slash
// escaping and no non-ASCII escaping. It reports ok=false when the
// payload is not valid JSON, or is valid but a bare scalar rather than a
// map or sequence -- scalars are left to the base64 or fallback stage.
// json.Unmarshal is used rather than a Decoder so that trailing
// non-whitespace bytes after a complete value (a Decoder would just
// stop after the first value and silently drop the rest) fail the
// stage instead of being discarded from the rewritten output.
func rewriteJSON(payload, search, replace []byte) ([]byte, bool) {
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, false
	}

	switch decoded.(type) {
	case map[string]any, []any:
	default:
		return nil, false
	}

	rewritten := replaceTree(decoded, string(search), string(replace))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rewritten); err != nil {
		return nil, false
	}

	// Encoder.Encode appends a trailing newline; the original payload
	// carried none.
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return out, true
}
