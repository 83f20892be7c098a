package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSerializedPreFilter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"empty", "", false},
		{"bad_first_byte", "xyz", false},
		{"no_delimiter", "sabc", false},
		{"null", "N;", true},
		{"bool", "b:1;", true},
		{"closure_refused", `C:8:"stdClass":0:{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseSerialized([]byte(tt.input))
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestByteLengthRecomputation(t *testing.T) {
	out := Rewrite(`s:5:"hello";`, "hello", "hi", 0)
	assert.Equal(t, `s:2:"hi";`, out)
}

func TestMultibyteByteCounting(t *testing.T) {
	out := Rewrite(`s:6:"café!";`, "café", "tea", 0)
	assert.Equal(t, `s:4:"tea!";`, out)
}

func TestNestedStructureWithReference(t *testing.T) {
	in := `a:2:{i:0;s:3:"foo";i:1;r:2;}`
	out := Rewrite(in, "foo", "foobar", 0)
	assert.Equal(t, `a:2:{i:0;s:6:"foobar";i:1;r:2;}`, out)
}

func TestObjectClassPreserved(t *testing.T) {
	in := `O:8:"stdClass":1:{s:3:"key";s:3:"old";}`
	out := Rewrite(in, "old", "newvalue", 0)
	assert.Equal(t, `O:8:"stdClass":1:{s:3:"key";s:8:"newvalue";}`, out)
}

func TestClosureRefusal(t *testing.T) {
	in := `C:8:"stdClass":10:{old stuff}`
	out := Rewrite(in, "old", "new", 0)
	assert.Equal(t, `C:8:"stdClass":10:{new stuff}`, out)
}

func TestRoundTripIdentityOnEmptySearch(t *testing.T) {
	in := `a:2:{i:0;s:3:"foo";i:1;r:2;}`
	assert.Equal(t, in, Rewrite(in, "", "anything", 0))
}

func TestSerializedRoundTripByteIdenticalWhenNoMatch(t *testing.T) {
	in := `a:2:{i:0;s:3:"foo";i:1;d:3.14;}`
	out := Rewrite(in, "nomatch", "x", 0)
	require.Equal(t, in, out)
}

func TestHugeStringLengthRejectedRatherThanPanicking(t *testing.T) {
	_, ok := parseSerialized([]byte(`s:9223372036854775807:"x";`))
	assert.False(t, ok)
}

func TestHugeClassLengthRejectedRatherThanPanicking(t *testing.T) {
	_, ok := parseSerialized([]byte(`O:9223372036854775807:"x":0:{}`))
	assert.False(t, ok)
}

func TestHugePairCountRejectedWithoutAllocating(t *testing.T) {
	_, ok := parseSerialized([]byte(`a:9223372036854775807:{i:0;N;}`))
	assert.False(t, ok)
}

func TestHugeObjectPairCountRejectedWithoutAllocating(t *testing.T) {
	_, ok := parseSerialized([]byte(`O:8:"stdClass":9223372036854775807:{i:0;N;}`))
	assert.False(t, ok)
}

func TestDeepNestingRejected(t *testing.T) {
	// 1500 levels of nested single-element arrays should exceed
	// maxSerializeDepth and be refused rather than overflow the stack.
	open := ""
	for i := 0; i < 1500; i++ {
		open += `a:1:{i:0;`
	}
	close := ""
	for i := 0; i < 1500; i++ {
		close += "}"
	}
	_, ok := parseSerialized([]byte(open + "N;" + close))
	assert.False(t, ok)
}
