package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docmerge-svc/docmerge-backend/internal/auth"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/service"
)

func (h *Handler) merge(c *gin.Context) {
	var req service.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: data field is required"})
		return
	}

	doc, err := h.svc.Merge(c.Request.Context(), c.Param("slug"), auth.Groups(c), req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(doc.Status, doc.ContentType, doc.Content)
}

func (h *Handler) download(c *gin.Context) {
	doc, err := h.svc.Download(c.Request.Context(), c.Param("file_name"), auth.Groups(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Header("Content-Length", strconv.Itoa(len(doc.Content)))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
