package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/clipstream/clipstream-api/internal/interface/http"
)

// TweetModule wires tweet routes.
// Public: GET /tweets/user/:userId
// Protected: create, update, delete.

type TweetModule struct {
	Handler *handlers.TweetHandler
	Auth    gin.HandlerFunc
}

func NewTweetModule(h *handlers.TweetHandler, auth gin.HandlerFunc) *TweetModule {
	return &TweetModule{Handler: h, Auth: auth}
}

func (m *TweetModule) Register(rg *gin.RouterGroup) {
	tweets := rg.Group("/tweets")
	tweets.GET("/user/:userId", m.Handler.ListByUser)

	auth := tweets.Group("/")
	auth.Use(m.Auth)
	auth.Use(protectedLimiters()...)
	{
		auth.POST("", m.Handler.Create)
		auth.PATCH("/:tweetId", m.Handler.Update)
		auth.DELETE("/:tweetId", m.Handler.Delete)
	}
}
