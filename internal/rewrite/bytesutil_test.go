package rewrite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteLenCountsBytesNotCodepoints(t *testing.T) {
	assert.Equal(t, 5, byteLen([]byte("café")))
	assert.Equal(t, 4, byteLen([]byte("café")[:4]))
}

func TestSliceBytesBounds(t *testing.T) {
	b := []byte("hello world")

	out, ok := sliceBytes(b, 0, 5)
	assert.True(t, ok)
	assert.Equal(t, "hello", string(out))

	_, ok = sliceBytes(b, 6, 100)
	assert.False(t, ok)

	_, ok = sliceBytes(b, -1, 3)
	assert.False(t, ok)
}

func TestSliceBytesRejectsHugeLengthWithoutOverflowing(t *testing.T) {
	b := []byte("hello world")

	_, ok := sliceBytes(b, 0, math.MaxInt)
	assert.False(t, ok)

	_, ok = sliceBytes(b, 5, math.MaxInt-2)
	assert.False(t, ok)

	_, ok = sliceBytes(b, len(b), math.MaxInt)
	assert.False(t, ok)
}

func TestFormatLen(t *testing.T) {
	assert.Equal(t, "0", formatLen(0))
	assert.Equal(t, "42", formatLen(42))
}
