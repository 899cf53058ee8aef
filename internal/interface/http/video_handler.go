package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/application"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/internal/interface/middleware"
	"github.com/clipstream/clipstream-api/pkg/helpers"
	"github.com/clipstream/clipstream-api/pkg/response"
	"github.com/clipstream/clipstream-api/pkg/validation"
)

type VideoHandler struct {
	Svc      *application.VideoService
	Users    *application.UserService
	Logger   *logrus.Logger
	StageDir string
}

func NewVideoHandler(svc *application.VideoService, users *application.UserService, logger *logrus.Logger, stageDir string) *VideoHandler {
	return &VideoHandler{Svc: svc, Users: users, Logger: logger, StageDir: stageDir}
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

type publishVideoRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// Publish handles POST /videos: multipart title/description, a videoFile
// and a thumbnail, plus an optional client-reported duration in seconds.
func (h *VideoHandler) Publish(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req publishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	videoPath, err := helpers.StageFormFile(c, "videoFile", h.StageDir)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "video file is required", nil)
		return
	}
	thumbPath, err := helpers.StageFormFile(c, "thumbnail", h.StageDir)
	if err != nil {
		helpers.DiscardStaged(videoPath)
		response.Error(c, http.StatusBadRequest, "thumbnail is required", nil)
		return
	}
	defer helpers.DiscardStaged(videoPath, thumbPath)

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	v, err := h.Svc.Publish(c.Request.Context(), application.PublishVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		Duration:      duration,
		Owner:         u.ID,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "video published successfully", nil)
}

// List handles GET /videos with page, limit, query and userId parameters.
// Only published videos are returned unless the caller filters by their
// own userId while authenticated.
func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	f := repository.VideoFilter{
		Query:         c.Query("query"),
		OnlyPublished: true,
		Page:          page,
		Limit:         limit,
	}
	if raw := c.Query("userId"); raw != "" {
		owner, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid userId", nil)
			return
		}
		f.Owner = owner
		if u, ok := middleware.CurrentUser(c); ok && u.ID == owner {
			f.OnlyPublished = false
		}
	}

	videos, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "videos fetched", gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
	})
}

// Get handles GET /videos/:videoId. A logged-in viewer gets the video
// appended to their watch history; failures there never block the read.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	v, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u, logged := middleware.CurrentUser(c); logged {
		if err := h.Users.RecordWatch(c.Request.Context(), u.ID, v.ID); err != nil {
			h.Logger.WithError(err).Warn("failed to record watch history")
		}
	}
	response.Success(c, http.StatusOK, v, "video fetched", nil)
}

type updateVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (h *VideoHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	var req updateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateVideoInput{Title: req.Title, Description: req.Description}
	if path, err := helpers.StageFormFile(c, "thumbnail", h.StageDir); err == nil {
		defer helpers.DiscardStaged(path)
		in.ThumbnailPath = path
	}

	v, err := h.Svc.Update(c.Request.Context(), id, u.ID, in)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "video updated", nil)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, u.ID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "video deleted", nil)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	v, err := h.Svc.TogglePublish(c.Request.Context(), id, u.ID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "publish status toggled", nil)
}
