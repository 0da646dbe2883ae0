package service

import (
	"context"
	"net/http"

	"github.com/docmerge-svc/docmerge-backend/internal/merge"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/engines"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
)

// MergeRequest is the payload of one merge invocation.
type MergeRequest struct {
	Data    map[string]any `json:"data" binding:"required"`
	Convert string         `json:"convert"`
}

// Document is a finalized, downloadable response body.
type Document struct {
	Content     []byte
	Status      int
	ContentType string
	FileName    string
}

// Merge runs the pipeline: resolve template, build engine, infer type,
// transform data, render, optionally convert, finalize the attachment.
func (s *TemplateService) Merge(ctx context.Context, slug string, groups []string, req MergeRequest) (*Document, error) {
	logger := NewLogger(ctx)

	// validate before any rendering work
	if req.Data == nil {
		return nil, domain.ErrInvalidPayload
	}

	tpl, err := s.repo.GetBySlug(ctx, slug, groups)
	if err != nil {
		return nil, err
	}

	content, err := s.templateContent(ctx, tpl.Slug)
	if err != nil {
		return nil, err
	}

	engine, err := engines.Get(tpl.Engine, content)
	if err != nil {
		return nil, err
	}

	contentType, extension := fileMeta(tpl.FileName)

	data, ok := merge.Walk(req.Data, merge.RichTextRule).(map[string]any)
	if !ok {
		return nil, domain.ErrInvalidPayload
	}

	sink, err := engine.Merge(data, engines.NewSink(contentType))
	if err != nil {
		logger.LogError("merge", err)
		return nil, err
	}
	if sink.Extension != "" {
		extension = sink.Extension
	}

	body := sink.Bytes()
	contentType = sink.ContentType
	status := http.StatusOK

	if req.Convert != "" {
		result, err := s.converter.Convert(ctx, body, req.Convert)
		if err != nil {
			logger.LogError("convert", err)
			return nil, err
		}
		// conversion replaces the rendered output entirely
		body = result.Content
		status = result.Status
		contentType = result.ContentType
		extension = result.Extension
		if status != http.StatusOK {
			logger.LogWarnf("convert", "converter returned status %d for format %q", status, req.Convert)
		}
	}

	return &Document{
		Content:     body,
		Status:      status,
		ContentType: contentType,
		FileName:    tpl.Slug + "." + extension,
	}, nil
}

// Download returns a template's stored bytes untouched, addressed by the
// stored file name.
func (s *TemplateService) Download(ctx context.Context, fileName string, groups []string) (*Document, error) {
	tpl, err := s.repo.GetByFileName(ctx, fileName, groups)
	if err != nil {
		return nil, err
	}

	content, err := s.templateContent(ctx, tpl.Slug)
	if err != nil {
		return nil, err
	}

	contentType, extension := fileMeta(tpl.FileName)
	return &Document{
		Content:     content,
		Status:      http.StatusOK,
		ContentType: contentType,
		FileName:    tpl.Slug + "." + extension,
	}, nil
}
