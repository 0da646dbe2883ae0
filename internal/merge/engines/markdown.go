package engines

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/docmerge-svc/docmerge-backend/internal/merge"
)

// markdownEngine renders a markdown template in two passes: pongo2 fills the
// placeholders, then goldmark converts the result to HTML.
type markdownEngine struct {
	content []byte
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func (e *markdownEngine) Merge(data map[string]any, sink *Sink) (*Sink, error) {
	tpl, err := pongo2.FromBytes(e.content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var source bytes.Buffer
	if err := tpl.ExecuteWriter(markdownContext(data), &source); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := markdown.Convert(source.Bytes(), sink); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	sink.ContentType = "text/html; charset=utf-8"
	sink.Extension = "html"
	return sink, nil
}

func markdownContext(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = markdownValue(value)
	}
	return ctx
}

// markdownValue injects rich-text markers as raw markdown with hard line
// breaks, bypassing HTML escaping which has no place in a markdown source.
func markdownValue(value any) any {
	switch v := value.(type) {
	case merge.RichText:
		return pongo2.AsSafeValue(hardBreaks(v.Text))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = markdownValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = markdownValue(val)
		}
		return out
	default:
		return v
	}
}

// hardBreaks turns every newline into a markdown hard line break so
// multi-line values render as separate lines, not a joined paragraph.
func hardBreaks(text string) string {
	out := make([]byte, 0, len(text)+16)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, ' ', ' ', '\n')
			continue
		}
		out = append(out, text[i])
	}
	return string(out)
}
