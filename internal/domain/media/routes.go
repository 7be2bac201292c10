package media

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the media library under /media.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	m := r.Group("/media")
	{
		m.GET("", h.List)
		m.POST("/upload", h.Upload)
		m.PUT("/assets/rename", h.Rename)
		m.DELETE("/assets/*path", h.Delete)
		m.POST("/folders", h.CreateFolder)
		m.PUT("/folders/rename", h.RenameFolder)
	}
}
