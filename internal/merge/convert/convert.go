// Package convert dispatches a rendered document to a format converter,
// either a local unoconv subprocess or a remote unoconv HTTP service. Both
// strategies produce the same Result shape.
package convert

import (
	"context"
	"errors"
)

// Sentinel errors.
//
// ErrTransport covers process-spawn and network failures. A converter that
// runs but reports a non-success result is not a transport error; that
// outcome is carried in Result.Status.
var (
	ErrUnknownFormat = errors.New("unknown conversion format")
	ErrTransport     = errors.New("conversion transport failed")
)

// Result is the normalized outcome of a conversion call.
type Result struct {
	Content     []byte
	Status      int
	ContentType string
	Extension   string
}

// Converter converts a rendered document into the named target format.
// Implementations are selected once at startup and never mixed per call.
type Converter interface {
	Convert(ctx context.Context, document []byte, format string) (*Result, error)
}
