package rewrite

import "bytes"

// onePass tries, in order: structural serialization rewrite, JSON,
// base64, then literal substring replacement -- the first strategy
// that succeeds wins. Every attempt is isolated: a failed parse or
// decode returns "not recognized" rather than surfacing an error, so
// the next strategy always gets a chance to run.
func onePass(payload, search, replace []byte) []byte {
	if v, ok := parseSerialized(payload); ok {
		return rewriteSerialized(v, search, replace)
	}

	if out, ok := rewriteJSON(payload, search, replace); ok {
		return out
	}

	if out, ok := rewriteBase64(payload, search, replace); ok {
		return out
	}

	return literalReplace(payload, search, replace)
}

func literalReplace(payload, search, replace []byte) []byte {
	if len(search) == 0 {
		return payload
	}
	return bytes.ReplaceAll(payload, search, replace)
}
