package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-api/internal/application"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/pkg/response"
)

// writeServiceError is the single boundary adapter from service errors to
// HTTP status codes. Anything unrecognized is an internal error and gets
// logged with its cause; the client only sees a generic message.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrUserExists):
		response.Error(c, http.StatusConflict, "user already exists", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error(c, http.StatusBadRequest, "wrong password", nil)
	case errors.Is(err, application.ErrInvalidRefreshToken):
		response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "content is required", nil)
	case errors.Is(err, application.ErrContentTooLong):
		response.Error(c, http.StatusBadRequest, "content exceeds maximum length", nil)
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrDuplicate):
		response.Error(c, http.StatusConflict, "duplicate value", nil)
	default:
		logger.WithError(err).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
