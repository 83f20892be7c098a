package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONStructuralReplacement(t *testing.T) {
	in := `{"url":"http://old.example/path","keys":["old","keep"]}`
	out, ok := rewriteJSON([]byte(in), []byte("old"), []byte("new"))
	assert.True(t, ok)
	assert.Equal(t, `{"keys":["new","keep"],"url":"http://new.example/path"}`, string(out))
}

func TestJSONScalarIsNotStructured(t *testing.T) {
	for _, in := range []string{`"abc"`, `42`, `true`, `null`} {
		_, ok := rewriteJSON([]byte(in), []byte("a"), []byte("b"))
		assert.False(t, ok, "scalar %q should not be treated as structured JSON", in)
	}
}

func TestJSONInvalidFallsThrough(t *testing.T) {
	_, ok := rewriteJSON([]byte(`{not json`), []byte("a"), []byte("b"))
	assert.False(t, ok)
}

func TestJSONNoSlashOrNonASCIIEscaping(t *testing.T) {
	in := `{"path":"a/b/c","name":"café"}`
	out, ok := rewriteJSON([]byte(in), []byte("nomatch"), []byte("x"))
	assert.True(t, ok)
	assert.Contains(t, string(out), "a/b/c")
	assert.Contains(t, string(out), "café")
}
