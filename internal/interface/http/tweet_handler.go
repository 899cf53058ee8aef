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

type TweetHandler struct {
	Svc    *application.TweetService
	Logger *logrus.Logger
}

func NewTweetHandler(svc *application.TweetService, logger *logrus.Logger) *TweetHandler {
	return &TweetHandler{Svc: svc, Logger: logger}
}

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *TweetHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), u.ID, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "tweet created", nil)
}

// ListByUser handles GET /tweets/user/:userId, newest first.
func (h *TweetHandler) ListByUser(c *gin.Context) {
	owner, ok := parseObjectID(c, "userId")
	if !ok {
		return
	}
	tweets, err := h.Svc.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tweets, "tweets fetched", nil)
}

func (h *TweetHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "tweetId")
	if !ok {
		return
	}
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), id, u.ID, req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "tweet updated", nil)
}

func (h *TweetHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseObjectID(c, "tweetId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, u.ID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "tweet deleted", nil)
}
