package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/clipstream/clipstream-api/internal/interface/http"
)

// VideoModule wires video routes.
// Public (with optional auth for watch history): GET /videos, GET /videos/:videoId
// Protected: publish, update, delete, toggle publish status.

type VideoModule struct {
	Handler      *handlers.VideoHandler
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
}

func NewVideoModule(h *handlers.VideoHandler, auth, optionalAuth gin.HandlerFunc) *VideoModule {
	return &VideoModule{Handler: h, Auth: auth, OptionalAuth: optionalAuth}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	videos := rg.Group("/videos")
	videos.GET("", m.OptionalAuth, m.Handler.List)
	videos.GET("/:videoId", m.OptionalAuth, m.Handler.Get)

	auth := videos.Group("/")
	auth.Use(m.Auth)
	auth.Use(protectedLimiters()...)
	{
		auth.POST("/upload-video", m.Handler.Publish)
		auth.POST("/update-video/:videoId", m.Handler.Update)
		auth.DELETE("/:videoId", m.Handler.Delete)
		auth.PATCH("/toggle-publish/:videoId", m.Handler.TogglePublish)
	}
}
