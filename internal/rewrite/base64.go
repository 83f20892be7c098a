package rewrite

import (
	"bytes"
	"encoding/base64"
)

// looksLikeBase64 classifies payload as plausible base64: non-empty,
// length divisible by 4, and every byte drawn from the
// standard alphabet plus padding. This is deliberately loose -- many
// plain-English words of length 4, 8, ... satisfy it too, and that is
// tolerated because the pipeline falls through to literal replace when
// decoding fails or the result is not useful.
func looksLikeBase64(payload []byte) bool {
	if len(payload) == 0 || len(payload)%4 != 0 {
		return false
	}
	for _, b := range payload {
		switch {
		case b >= 'A' && b <= 'Z':
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '+' || b == '/' || b == '=':
		default:
			return false
		}
	}
	return true
}

// rewriteBase64 decodes payload with strict standard-alphabet base64,
// performs a flat byte-wise substring replacement on the decoded bytes
// (no recursive descent -- the inner payload is treated as opaque), and
// re-encodes canonically. The decoded bytes are never re-parsed, so a
// length prefix inside them (e.g. of a serialized string) is not
// recomputed; later passes of the multi-pass driver see the re-encoded
// base64 again and treat it the same flat way.
func rewriteBase64(payload, search, replace []byte) ([]byte, bool) {
	if !looksLikeBase64(payload) {
		return nil, false
	}

	decoded, err := base64.StdEncoding.Strict().DecodeString(string(payload))
	if err != nil || len(decoded) == 0 {
		return nil, false
	}

	rewritten := decoded
	if len(search) > 0 {
		rewritten = bytes.ReplaceAll(decoded, search, replace)
	}

	out := base64.StdEncoding.EncodeToString(rewritten)
	return []byte(out), true
}
