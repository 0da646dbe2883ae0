package engines

import (
	"fmt"
	"html"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/docmerge-svc/docmerge-backend/internal/merge"
)

// pongoEngine renders HTML/text templates with pongo2 (Django template
// syntax, matching how template authors already write these documents).
type pongoEngine struct {
	content []byte
}

func (e *pongoEngine) Merge(data map[string]any, sink *Sink) (*Sink, error) {
	tpl, err := pongo2.FromBytes(e.content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := tpl.ExecuteWriter(pongoContext(data), sink); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return sink, nil
}

func pongoContext(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = pongoValue(value)
	}
	return ctx
}

// pongoValue converts rich-text markers into pre-escaped safe values so
// pongo2's autoescaping does not re-escape the injected line breaks.
func pongoValue(value any) any {
	switch v := value.(type) {
	case merge.RichText:
		return pongo2.AsSafeValue(richHTML(v.Text))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = pongoValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = pongoValue(val)
		}
		return out
	default:
		return v
	}
}

func richHTML(text string) string {
	escaped := html.EscapeString(text)
	return strings.ReplaceAll(escaped, "\n", "<br/>")
}
