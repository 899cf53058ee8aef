package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/clipstream/clipstream-api/internal/interface/http"
)

// PlaylistModule wires playlist routes.
// Public: GET /playlists/:playlistId, GET /playlists/user/:userId
// Protected: create, update, delete, add/remove video.

type PlaylistModule struct {
	Handler *handlers.PlaylistHandler
	Auth    gin.HandlerFunc
}

func NewPlaylistModule(h *handlers.PlaylistHandler, auth gin.HandlerFunc) *PlaylistModule {
	return &PlaylistModule{Handler: h, Auth: auth}
}

func (m *PlaylistModule) Register(rg *gin.RouterGroup) {
	playlists := rg.Group("/playlists")
	playlists.GET("/:playlistId", m.Handler.Get)
	playlists.GET("/user/:userId", m.Handler.ListByUser)

	auth := playlists.Group("/")
	auth.Use(m.Auth)
	auth.Use(protectedLimiters()...)
	{
		auth.POST("", m.Handler.Create)
		auth.PATCH("/:playlistId", m.Handler.Update)
		auth.DELETE("/:playlistId", m.Handler.Delete)
		auth.PATCH("/:playlistId/videos/:videoId", m.Handler.AddVideo)
		auth.DELETE("/:playlistId/videos/:videoId", m.Handler.RemoveVideo)
	}
}
