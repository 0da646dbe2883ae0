package http

import "github.com/gin-gonic/gin"

// Register attaches template CRUD and merge routes to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:slug", h.get)
	rg.PATCH("/:slug", h.update)
	rg.DELETE("/:slug", h.delete)
	rg.POST("/:slug/merge", h.merge)
}

// RegisterDownload attaches the raw template download route.
func (h *Handler) RegisterDownload(rg *gin.RouterGroup) {
	rg.GET("/:file_name", h.download)
}
