package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docmerge-svc/docmerge-backend/internal/auth"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/engines"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/domain"
)

func (h *Handler) list(c *gin.Context) {
	filter := domain.ListFilter{
		Slug:   c.Query("slug"),
		Search: c.Query("search"),
	}

	items, err := h.svc.List(c.Request.Context(), filter, auth.Groups(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": items})
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("slug"), auth.Groups(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *Handler) create(c *gin.Context) {
	slug := strings.TrimSpace(c.PostForm("slug"))
	engineID := strings.TrimSpace(c.PostForm("engine"))
	if slug == "" || engineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "slug and engine are required"})
		return
	}
	if _, err := engines.Get(engineID, nil); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown engine: " + engineID})
		return
	}

	fileName, content, err := formFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "template file is required"})
		return
	}

	t := &domain.Template{
		Slug:        slug,
		Description: c.PostForm("description"),
		Engine:      engineID,
		Group:       optionalForm(c, "group"),
		FileName:    fileName,
		Content:     content,
	}

	created, err := h.svc.Create(c.Request.Context(), t)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "template": created})
}

func (h *Handler) update(c *gin.Context) {
	slug := c.Param("slug")

	existing, err := h.svc.Get(c.Request.Context(), slug, auth.Groups(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	t := &domain.Template{
		Slug:        slug,
		Description: existing.Description,
		Engine:      existing.Engine,
		Group:       existing.Group,
		FileName:    existing.FileName,
	}
	if v, ok := c.GetPostForm("description"); ok {
		t.Description = v
	}
	if v, ok := c.GetPostForm("engine"); ok {
		if _, err := engines.Get(v, nil); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown engine: " + v})
			return
		}
		t.Engine = v
	}
	if v, ok := c.GetPostForm("group"); ok {
		if v == "" {
			t.Group = nil
		} else {
			t.Group = &v
		}
	}
	if fileName, content, err := formFile(c); err == nil {
		t.FileName = fileName
		t.Content = content
	}

	updated, err := h.svc.Update(c.Request.Context(), t, auth.Groups(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": updated})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug"), auth.Groups(c)); err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func formFile(c *gin.Context) (string, []byte, error) {
	header, err := c.FormFile("template")
	if err != nil {
		return "", nil, err
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}

func optionalForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok && v != "" {
		return &v
	}
	return nil
}
