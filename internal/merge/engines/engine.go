// Package engines maps engine identifiers to concrete template renderers.
// An engine is built fresh per request from a template's engine id and stored
// content, used for exactly one merge, and discarded.
package engines

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for engine resolution and rendering.
var (
	ErrUnknownEngine = errors.New("unknown template engine")
	ErrRender        = errors.New("template render failed")
)

// Engine identifiers accepted by Get.
const (
	EngineHTML     = "html-template"
	EngineMarkdown = "markdown-template"
	EngineDocx     = "docx-template"
)

// Sink collects rendered bytes together with the response metadata an engine
// is allowed to adjust. The same sink instance is returned from Merge.
type Sink struct {
	buf bytes.Buffer

	ContentType string
	// Extension overrides the extension inferred from the template file
	// when the engine's output format differs from its input format.
	Extension string
	Header    http.Header
}

// NewSink creates a sink with the given initial content type.
func NewSink(contentType string) *Sink {
	return &Sink{
		ContentType: contentType,
		Header:      make(http.Header),
	}
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Bytes returns the accumulated rendered content.
func (s *Sink) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *Sink) Len() int {
	return s.buf.Len()
}

// Engine renders structured data into a template.
//
// Merge writes the rendered document into sink and returns the same sink.
// A data shape incompatible with the template fails with an error wrapping
// ErrRender and must not leave partial output in the sink's place.
type Engine interface {
	Merge(data map[string]any, sink *Sink) (*Sink, error)
}

// Get resolves an engine identifier and template content to an Engine.
// Unknown identifiers are rejected, never silently defaulted.
func Get(engineID string, content []byte) (Engine, error) {
	switch engineID {
	case EngineHTML:
		return &pongoEngine{content: content}, nil
	case EngineMarkdown:
		return &markdownEngine{content: content}, nil
	case EngineDocx:
		return &stencilEngine{content: content}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engineID)
	}
}
