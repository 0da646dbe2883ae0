// Package service implements the template management and merge orchestration
// on top of the repository, cache, engine registry, and conversion
// dispatcher.
package service

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docmerge-svc/docmerge-backend/internal/merge/convert"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/cache"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
)

// Repository is the storage collaborator used by the service.
type Repository interface {
	Create(ctx context.Context, t *domain.Template) (*domain.Template, error)
	GetBySlug(ctx context.Context, slug string, groups []string) (*domain.Template, error)
	GetByFileName(ctx context.Context, fileName string, groups []string) (*domain.Template, error)
	Content(ctx context.Context, slug string) ([]byte, error)
	List(ctx context.Context, filter domain.ListFilter, groups []string) ([]domain.Template, error)
	Update(ctx context.Context, t *domain.Template, groups []string) (*domain.Template, error)
	Delete(ctx context.Context, slug string, groups []string) error
}

// TemplateService manages templates and runs the merge pipeline.
type TemplateService struct {
	repo      Repository
	cache     *cache.ContentCache
	converter convert.Converter
}

func New(repo Repository, contentCache *cache.ContentCache, converter convert.Converter) *TemplateService {
	return &TemplateService{
		repo:      repo,
		cache:     contentCache,
		converter: converter,
	}
}

// Create stores a new template. When the uploaded file name carries no
// extension, one is sniffed from the content so type inference keeps working.
func (s *TemplateService) Create(ctx context.Context, t *domain.Template) (*domain.Template, error) {
	if !strings.Contains(t.FileName, ".") {
		t.FileName += mimetype.Detect(t.Content).Extension()
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, created.Slug, t.Content)
	return created, nil
}

// Get returns a template's metadata.
func (s *TemplateService) Get(ctx context.Context, slug string, groups []string) (*domain.Template, error) {
	return s.repo.GetBySlug(ctx, slug, groups)
}

// List returns visible templates matching the filter.
func (s *TemplateService) List(ctx context.Context, filter domain.ListFilter, groups []string) ([]domain.Template, error) {
	return s.repo.List(ctx, filter, groups)
}

// Update rewrites a template and drops its cached content.
func (s *TemplateService) Update(ctx context.Context, t *domain.Template, groups []string) (*domain.Template, error) {
	if t.Content != nil && !strings.Contains(t.FileName, ".") {
		t.FileName += mimetype.Detect(t.Content).Extension()
	}

	updated, err := s.repo.Update(ctx, t, groups)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, updated.Slug)
	return updated, nil
}

// Delete removes a template and its cached content.
func (s *TemplateService) Delete(ctx context.Context, slug string, groups []string) error {
	if err := s.repo.Delete(ctx, slug, groups); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, slug)
	return nil
}

// templateContent serves the stored file bytes, preferring the cache.
func (s *TemplateService) templateContent(ctx context.Context, slug string) ([]byte, error) {
	if content, ok := s.cache.Get(ctx, slug); ok {
		return content, nil
	}

	content, err := s.repo.Content(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, slug, content)
	return content, nil
}
