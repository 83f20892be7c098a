package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceTreeWalksMapsKeysAndValues(t *testing.T) {
	in := map[string]any{
		"old_key": "value with old inside",
		"nested": map[string]any{
			"list": []any{"old", "keep", float64(3)},
		},
	}

	out := replaceTree(in, "old", "new")
	m, ok := out.(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, m, "new_key")
	assert.Equal(t, "value with new inside", m["new_key"])

	nested := m["nested"].(map[string]any)
	list := nested["list"].([]any)
	assert.Equal(t, "new", list[0])
	assert.Equal(t, "keep", list[1])
	assert.Equal(t, float64(3), list[2])
}

func TestReplaceTreePassesScalarsThrough(t *testing.T) {
	assert.Equal(t, float64(5), replaceTree(float64(5), "a", "b"))
	assert.Equal(t, true, replaceTree(true, "a", "b"))
	assert.Nil(t, replaceTree(nil, "a", "b"))
}
