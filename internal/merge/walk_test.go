package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_PreservesShape(t *testing.T) {
	input := map[string]any{
		"name": "Jo",
		"items": []any{
			map[string]any{"qty": 2, "label": "first"},
			map[string]any{"qty": 3, "label": "second"},
		},
		"active": true,
		"score":  4.5,
		"note":   nil,
	}

	out := Walk(input, func(v any) any { return v })

	assert.Equal(t, input, out)

	outMap, ok := out.(map[string]any)
	require.True(t, ok)
	items, ok := outMap["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestWalk_DoesNotMutateInput(t *testing.T) {
	input := map[string]any{
		"note": "line1\nline2",
		"tags": []any{"a\nb", "c"},
	}

	out := Walk(input, RichTextRule)

	// original tree untouched
	assert.Equal(t, "line1\nline2", input["note"])
	assert.Equal(t, "a\nb", input["tags"].([]any)[0])

	outMap := out.(map[string]any)
	assert.Equal(t, RichText{Text: "line1\nline2"}, outMap["note"])
	assert.Equal(t, RichText{Text: "a\nb"}, outMap["tags"].([]any)[0])
	assert.Equal(t, "c", outMap["tags"].([]any)[1])
}

func TestWalk_AppliesRuleToScalarRoot(t *testing.T) {
	out := Walk("a\nb", RichTextRule)
	assert.Equal(t, RichText{Text: "a\nb"}, out)
}

func TestWalk_SequenceOrderPreserved(t *testing.T) {
	input := []any{"one", "two", "three"}
	out := Walk(input, func(v any) any { return v })
	assert.Equal(t, []any{"one", "two", "three"}, out)
}

func TestRichTextRule(t *testing.T) {
	assert.Equal(t, RichText{Text: "a\nb"}, RichTextRule("a\nb"))
	assert.Equal(t, "ab", RichTextRule("ab"))
	assert.Equal(t, 42, RichTextRule(42))
	assert.Nil(t, RichTextRule(nil))
	assert.Equal(t, true, RichTextRule(true))
}
