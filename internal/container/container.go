package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clipstream/clipstream-api/config"
	"github.com/clipstream/clipstream-api/pkg/helpers"
	"github.com/clipstream/clipstream-api/pkg/media"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoDB     *mongo.Database
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	cookies    *helpers.CookieManager

	uploader  media.Uploader
	rabbitPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetMongoDB(db *mongo.Database)         { mongoDB = db }
func GetMongoDB() *mongo.Database           { return mongoDB }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetJWT(m *helpers.JWTManager)          { jwtManager = m }
func GetJWT() *helpers.JWTManager           { return jwtManager }
func SetCookies(m *helpers.CookieManager)   { cookies = m }
func GetCookies() *helpers.CookieManager    { return cookies }
func SetUploader(u media.Uploader)          { uploader = u }
func GetUploader() media.Uploader           { return uploader }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
