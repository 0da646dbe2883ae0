// Package merge holds the data-transformation pass that runs over a merge
// request's payload before it reaches a template engine.
package merge

import "strings"

// Rule rewrites a single scalar leaf.
type Rule func(value any) any

// RichText marks a multi-line string so engines render it as formatted
// paragraphs instead of an escaped literal.
type RichText struct {
	Text string
}

// Walk applies rule to every scalar leaf of value, recursing through maps and
// slices. The input is never mutated; the result has the same shape.
func Walk(value any, rule Rule) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = Walk(val, rule)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Walk(val, rule)
		}
		return out
	default:
		return rule(v)
	}
}

// RichTextRule wraps string leaves containing a newline into a RichText
// marker. Everything else passes through unchanged.
func RichTextRule(value any) any {
	if s, ok := value.(string); ok && strings.Contains(s, "\n") {
		return RichText{Text: s}
	}
	return value
}
