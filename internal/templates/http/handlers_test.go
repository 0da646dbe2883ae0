package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmerge-svc/docmerge-backend/internal/auth"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/engines"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/service"
)

// fakeService serves canned results and records calls.
type fakeService struct {
	template *domain.Template
	doc      *service.Document
	err      error

	mergeSlug string
	mergeReq  service.MergeRequest
	groups    []string
	created   *domain.Template
}

func (f *fakeService) Create(_ context.Context, t *domain.Template) (*domain.Template, error) {
	f.created = t
	return t, f.err
}

func (f *fakeService) Get(_ context.Context, slug string, groups []string) (*domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.template, nil
}

func (f *fakeService) List(_ context.Context, _ domain.ListFilter, _ []string) ([]domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.template == nil {
		return []domain.Template{}, nil
	}
	return []domain.Template{*f.template}, nil
}

func (f *fakeService) Update(_ context.Context, t *domain.Template, _ []string) (*domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return t, nil
}

func (f *fakeService) Delete(_ context.Context, _ string, _ []string) error {
	return f.err
}

func (f *fakeService) Merge(_ context.Context, slug string, groups []string, req service.MergeRequest) (*service.Document, error) {
	f.mergeSlug = slug
	f.mergeReq = req
	f.groups = groups
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeService) Download(_ context.Context, _ string, _ []string) (*service.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.WithGroups())

	h := New(svc)
	h.Register(r.Group("/api/v1/templates"))
	h.RegisterDownload(r.Group("/api/v1/template-files"))
	return r
}

func TestMergeEndpoint_Success(t *testing.T) {
	svc := &fakeService{doc: &service.Document{
		Content:     []byte("<p>Hello Jo</p>"),
		Status:      http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		FileName:    "letter.html",
	}}
	r := setupRouter(svc)

	body := `{"data": {"name": "Jo"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/letter/merge", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.GroupsHeader, "finance")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="letter.html"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>Hello Jo</p>", w.Body.String())

	assert.Equal(t, "letter", svc.mergeSlug)
	assert.Equal(t, map[string]any{"name": "Jo"}, svc.mergeReq.Data)
	assert.Equal(t, []string{"finance"}, svc.groups)
}

func TestMergeEndpoint_MissingDataField(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/letter/merge", bytes.NewBufferString(`{"convert": "pdf"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.mergeSlug, "service must not be called for an invalid payload")
}

func TestMergeEndpoint_ConvertMustBeString(t *testing.T) {
	r := setupRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/letter/merge", bytes.NewBufferString(`{"data": {}, "convert": 7}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMergeEndpoint_NotFound(t *testing.T) {
	r := setupRouter(&fakeService{err: domain.ErrTemplateNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/nope/merge", bytes.NewBufferString(`{"data": {}}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMergeEndpoint_RenderErrorIsUnprocessable(t *testing.T) {
	r := setupRouter(&fakeService{err: engines.ErrRender})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/letter/merge", bytes.NewBufferString(`{"data": {}}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMergeEndpoint_ConverterStatusPassesThrough(t *testing.T) {
	svc := &fakeService{doc: &service.Document{
		Content:     []byte("unoconv: error"),
		Status:      http.StatusInternalServerError,
		ContentType: "application/pdf",
		FileName:    "letter.pdf",
	}}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/letter/merge", bytes.NewBufferString(`{"data": {}, "convert": "pdf"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "unoconv: error", w.Body.String())
}

func TestDownloadEndpoint(t *testing.T) {
	stored := []byte("raw-template-bytes")
	svc := &fakeService{doc: &service.Document{
		Content:     stored,
		Status:      http.StatusOK,
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FileName:    "invoice.docx",
	}}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/template-files/invoice.docx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stored, w.Body.Bytes())
	assert.Equal(t, "18", w.Header().Get("Content-Length"))
	assert.Equal(t, `attachment; filename="invoice.docx"`, w.Header().Get("Content-Disposition"))
}

func TestCreateEndpoint_Multipart(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("slug", "letter"))
	require.NoError(t, mw.WriteField("engine", engines.EngineHTML))
	require.NoError(t, mw.WriteField("description", "a letter"))
	fw, err := mw.CreateFormFile("template", "letter.html")
	require.NoError(t, err)
	_, err = fw.Write([]byte("<p>{{ name }}</p>"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "letter", svc.created.Slug)
	assert.Equal(t, engines.EngineHTML, svc.created.Engine)
	assert.Equal(t, "letter.html", svc.created.FileName)
	assert.Equal(t, []byte("<p>{{ name }}</p>"), svc.created.Content)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
}

func TestCreateEndpoint_UnknownEngine(t *testing.T) {
	r := setupRouter(&fakeService{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("slug", "letter"))
	require.NoError(t, mw.WriteField("engine", "quill"))
	fw, _ := mw.CreateFormFile("template", "letter.html")
	_, _ = fw.Write([]byte("x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
