package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/pkg/helpers"
	"github.com/clipstream/clipstream-api/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// Auth validates the access token from the accessToken cookie or the
// Authorization header and loads the referenced user. All reject paths
// answer 401 with the same client-facing message; the distinguishing reason
// only goes to the log. A token for a deleted user is treated exactly like
// an invalid one.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		u, reason := resolveUser(c, users, jwt, token)
		if u == nil {
			logger.WithField("reason", reason).Debug("access token rejected")
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID.Hex())
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid access token is present and
// silently continues otherwise. Used on public routes that personalize
// behavior (watch history) for logged-in callers.
func OptionalAuth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if u, _ := resolveUser(c, users, jwt, token); u != nil {
				c.Set(CtxUserKey, u)
				c.Set(CtxUserIDKey, u.ID.Hex())
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

func tokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(helpers.AccessTokenCookie); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func resolveUser(c *gin.Context, users repository.UserRepository, jwt *helpers.JWTManager, token string) (*entity.User, string) {
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return nil, "verification failed: " + err.Error()
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, "malformed user id"
	}
	u, err := users.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, "user not found"
	}
	return u, ""
}
