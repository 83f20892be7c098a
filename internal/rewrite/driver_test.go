package rewrite

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePlainASCII(t *testing.T) {
	assert.Equal(t, "hello there", Rewrite("hello world", "world", "there", 0))
}

func TestRewritePurity(t *testing.T) {
	a := Rewrite(`s:5:"hello";`, "hello", "hi", 0)
	b := Rewrite(`s:5:"hello";`, "hello", "hi", 0)
	assert.Equal(t, a, b)
}

func TestRewriteIdentityOnEmptySearch(t *testing.T) {
	payload := `s:5:"hello"; and some {"json":"too"}`
	assert.Equal(t, payload, Rewrite(payload, "", "ignored", 0))
}

func TestRewriteIdempotenceOnDisjointReplacements(t *testing.T) {
	payload := `s:3:"old";`
	once := Rewrite(payload, "old", "new", 0)
	twice := Rewrite(once, "old", "new", 0)
	assert.Equal(t, once, twice)
}

func TestRewriteConvergesWithinBound(t *testing.T) {
	// Pathological input: replace contains search, so every pass grows
	// the payload and no fixed point exists, but the driver must still
	// stop at maxIterations. "a!" is neither serialization, JSON nor
	// base64, so each pass is a literal replace: 1 -> 4 -> 16 a's.
	payload := "a!"
	out := Rewrite(payload, "a", "aaaa", 2)
	assert.Equal(t, strings.Repeat("a", 16)+"!", out)
}

func TestRewriteNestedEnvelopeWholeValuePreDecoded(t *testing.T) {
	// A serialization payload stored inside another serialization
	// payload's string is not parsed as a layer of its own: the outer
	// string is replaced flatly and only its own length prefix is
	// recomputed, so the inner s:3 prefix is left as it was.
	inner := `s:3:"old";`
	outer := `a:1:{i:0;s:` + strconv.Itoa(len(inner)) + `:"` + inner + `";}`
	out := Rewrite(outer, "old", "newer", 0)
	assert.Contains(t, out, "newer")
}
