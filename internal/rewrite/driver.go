package rewrite

import "bytes"

// DefaultMaxIterations is the fixed-point bound on repeated rewrite
// passes. Each pass re-runs the single-pass dispatcher on the previous
// pass's output; no stage descends into a decoded base64 layer or into
// the contents of a string, so the bound is what stops a replace value
// that keeps producing new matches (e.g. one containing search) from
// growing the payload without end.
const DefaultMaxIterations = 5

// Rewrite is the multi-pass fixed-point driver. It is a pure function
// of (payload, search, replace): no global state, no database access,
// safely re-entrant across goroutines. It applies the single-pass
// dispatcher repeatedly, stopping when the output equals the input
// byte-for-byte or after maxIterations passes, whichever comes first,
// and returns the last output produced.
func Rewrite(payload, search, replace string, maxIterations int) string {
	return string(RewriteBytes([]byte(payload), []byte(search), []byte(replace), maxIterations))
}

// RewriteBytes is the byte-slice form of Rewrite, used directly by the
// table walker so that column values read straight from the driver
// never round trip through a Go string and risk an implicit charset
// transcode.
func RewriteBytes(payload, search, replace []byte, maxIterations int) []byte {
	if len(search) == 0 {
		// Identity on empty search, byte-identical.
		return payload
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := payload
	for i := 0; i < maxIterations; i++ {
		next := onePass(current, search, replace)
		if bytes.Equal(next, current) {
			return next
		}
		current = next
	}
	return current
}
