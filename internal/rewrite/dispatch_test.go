package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnePassPlainStringFallback(t *testing.T) {
	out := onePass([]byte("hello world"), []byte("world"), []byte("there"))
	assert.Equal(t, "hello there", string(out))
}

func TestDispatcherSendsBraceInputToJSONStage(t *testing.T) {
	// Inputs beginning with '{' or '[' are never mistaken for
	// serialization, since those bytes are not in the serialization
	// pre-filter's first-byte set.
	out := onePass([]byte(`{"a":"old"}`), []byte("old"), []byte("new"))
	assert.JSONEq(t, `{"a":"new"}`, string(out))
}

func TestDispatcherOrderSerializationWinsWhenValid(t *testing.T) {
	out := onePass([]byte(`s:3:"old";`), []byte("old"), []byte("new"))
	assert.Equal(t, `s:3:"new";`, string(out))
}

func TestDispatcherFallsThroughToLiteralForUnrecognized(t *testing.T) {
	out := onePass([]byte("just some plain text with old in it"), []byte("old"), []byte("new"))
	assert.Equal(t, "just some plain text with new in it", string(out))
}
