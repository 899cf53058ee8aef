package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-api/internal/application"
	"github.com/clipstream/clipstream-api/internal/interface/middleware"
	"github.com/clipstream/clipstream-api/pkg/response"
	"github.com/clipstream/clipstream-api/pkg/validation"
)

type PlaylistHandler struct {
	Svc    *application.PlaylistService
	Logger *logrus.Logger
}

func NewPlaylistHandler(svc *application.PlaylistService, logger *logrus.Logger) *PlaylistHandler {
	return &PlaylistHandler{Svc: svc, Logger: logger}
}

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), u.ID, req.Name, req.Description)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "playlist created", nil)
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, "playlistId")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist fetched", nil)
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	owner, ok := parseObjectID(c, "userId")
	if !ok {
		return
	}
	playlists, err := h.Svc.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, playlists, "playlists fetched", nil)
}

type updatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "playlistId")
	if !ok {
		return
	}
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, u.ID, req.Name, req.Description)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist updated", nil)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	p, err := h.Svc.AddVideo(c.Request.Context(), id, u.ID, videoID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "video added to playlist", nil)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	p, err := h.Svc.RemoveVideo(c.Request.Context(), id, u.ID, videoID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "video removed from playlist", nil)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "playlistId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, u.ID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "playlist deleted", nil)
}
