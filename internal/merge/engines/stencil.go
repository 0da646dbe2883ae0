package engines

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benjaminschreck/go-stencil/pkg/stencil"

	"github.com/docmerge-svc/docmerge-backend/internal/merge"
)

// stencilEngine renders DOCX templates with go-stencil.
type stencilEngine struct {
	content []byte
}

func (e *stencilEngine) Merge(data map[string]any, sink *Sink) (*Sink, error) {
	tpl, err := stencil.Prepare(bytes.NewReader(e.content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer tpl.Close()

	out, err := tpl.Render(stencilData(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if _, err := io.Copy(sink, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return sink, nil
}

// stencilData unwraps rich-text markers back to their raw text. The DOCX
// renderer keeps line breaks inside a run, so no extra markup is needed.
func stencilData(data map[string]any) stencil.TemplateData {
	out := make(stencil.TemplateData, len(data))
	for key, value := range data {
		out[key] = stencilValue(value)
	}
	return out
}

func stencilValue(value any) any {
	switch v := value.(type) {
	case merge.RichText:
		return v.Text
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = stencilValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = stencilValue(val)
		}
		return out
	default:
		return v
	}
}
