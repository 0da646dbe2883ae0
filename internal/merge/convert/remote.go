package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const remoteTimeout = 2 * time.Minute

// Remote converts documents by delegating to a separately hosted unoconv
// service. The remote status code and body pass through verbatim; extension
// and content type come from the local format table, never from the remote
// response.
type Remote struct {
	baseURL string
	formats map[string]Format
	client  *http.Client
}

func NewRemote(baseURL string, formats map[string]Format) *Remote {
	return &Remote{
		baseURL: baseURL,
		formats: formats,
		client:  &http.Client{Timeout: remoteTimeout},
	}
}

func (r *Remote) Convert(ctx context.Context, document []byte, format string) (*Result, error) {
	f, ok := r.formats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "document")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if _, err := part.Write(document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	url := r.baseURL + "/unoconv/" + format
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	return &Result{
		Content:     content,
		Status:      resp.StatusCode,
		ContentType: f.MIME,
		Extension:   f.Extension,
	}, nil
}
