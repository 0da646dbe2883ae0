package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/docmerge-svc/docmerge-backend/internal/merge/convert"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/engines"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/service"
)

// Service is the template service surface the handlers depend on.
type Service interface {
	Create(ctx context.Context, t *domain.Template) (*domain.Template, error)
	Get(ctx context.Context, slug string, groups []string) (*domain.Template, error)
	List(ctx context.Context, filter domain.ListFilter, groups []string) ([]domain.Template, error)
	Update(ctx context.Context, t *domain.Template, groups []string) (*domain.Template, error)
	Delete(ctx context.Context, slug string, groups []string) error
	Merge(ctx context.Context, slug string, groups []string, req service.MergeRequest) (*service.Document, error)
	Download(ctx context.Context, fileName string, groups []string) (*service.Document, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// errStatus maps service errors onto HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTemplateAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, engines.ErrUnknownEngine),
		errors.Is(err, convert.ErrUnknownFormat),
		errors.Is(err, engines.ErrRender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, convert.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
