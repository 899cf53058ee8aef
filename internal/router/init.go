package router

import (
	"github.com/clipstream/clipstream-api/internal/application"
	"github.com/clipstream/clipstream-api/internal/container"
	"github.com/clipstream/clipstream-api/internal/infrastructure/mongodb"
	handlers "github.com/clipstream/clipstream-api/internal/interface/http"
	"github.com/clipstream/clipstream-api/internal/interface/middleware"
	"github.com/clipstream/clipstream-api/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module with the registry.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongoDB()

	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)
	tweetRepo := mongodb.NewTweetRepository(db)
	playlistRepo := mongodb.NewPlaylistRepository(db)

	userSvc := application.NewUserService(userRepo, videoRepo, container.GetJWT(), container.GetUploader(), logger)
	videoSvc := application.NewVideoService(videoRepo, container.GetUploader(), container.GetRabbitPub(), logger)
	tweetSvc := application.NewTweetService(tweetRepo, logger)
	playlistSvc := application.NewPlaylistService(playlistRepo, videoRepo, logger)

	auth := middleware.Auth(userRepo, container.GetJWT(), logger)
	optionalAuth := middleware.OptionalAuth(userRepo, container.GetJWT())

	userHandler := handlers.NewUserHandler(userSvc, logger, container.GetCookies(), cfg.UploadTempDir)
	videoHandler := handlers.NewVideoHandler(videoSvc, userSvc, logger, cfg.UploadTempDir)
	tweetHandler := handlers.NewTweetHandler(tweetSvc, logger)
	playlistHandler := handlers.NewPlaylistHandler(playlistSvc, logger)

	r.Add(modules.NewUserModule(userHandler, auth))
	r.Add(modules.NewVideoModule(videoHandler, auth, optionalAuth))
	r.Add(modules.NewTweetModule(tweetHandler, auth))
	r.Add(modules.NewPlaylistModule(playlistHandler, auth))
	r.Add(modules.NewDebugModule())
}
