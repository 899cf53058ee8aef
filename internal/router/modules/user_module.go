package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipstream-api/internal/container"
	handlers "github.com/clipstream/clipstream-api/internal/interface/http"
	"github.com/clipstream/clipstream-api/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /users/register, POST /users/login, POST /users/refresh-token
// Protected: logout, current-user, password change, detail and image
// updates, watch history.

type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP
	registerLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/refresh-token", refreshLimiter, m.Handler.Refresh)

	auth := users.Group("/")
	auth.Use(m.Auth)
	auth.Use(protectedLimiters()...)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/current-user", m.Handler.CurrentUser)
		auth.POST("/update-user-password", m.Handler.ChangePassword)
		auth.PATCH("/update-user-details", m.Handler.UpdateDetails)
		auth.PATCH("/update-user-avatar", m.Handler.UpdateAvatar)
		auth.PATCH("/update-user-coverImage", m.Handler.UpdateCoverImage)
		auth.GET("/history", m.Handler.WatchHistory)
	}
}

// protectedLimiters is the shared soft limit applied behind authentication:
// a per-IP ceiling plus a tighter per-user one.
func protectedLimiters() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	}
}
