package main

import (
	"context"
	"time"

	"pattern-share/pkg/cache"
	"pattern-share/pkg/config"
	"pattern-share/pkg/database"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/queue"
	patternApp "pattern-share/services/pattern/internal/app"

	"github.com/gin-gonic/gin"
)

const startupTimeout = 10 * time.Second

// @title           Pattern Library API
// @version         1.0
// @description     Upload, search and like knitting and crochet patterns.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewConsole()
	if cfg.IsProduction() {
		log = logger.New()
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	filter, err := patternApp.LoadBlocklist(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to load blocklist: %v", err)
		panic(err)
	}

	var res patternApp.Resources

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		db, err := database.NewMongoDatabase(cfg)
		if err != nil {
			log.Error("Failed to create MongoDB client: %v", err)
			panic(err)
		}
		if err := db.Client().Ping(ctx, nil); err != nil {
			log.Error("MongoDB is unreachable: %v (continuing, requests will fail until it recovers)", err)
		}
		res.MongoDB = db
	default:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to create database pool: %v", err)
			panic(err)
		}
		if err := database.PingPostgres(ctx, db); err != nil {
			log.Error("Database is unreachable: %v (continuing, requests will fail until it recovers)", err)
		} else {
			patternApp.CheckSchema(db, log)
		}
		res.DB = db
	}

	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		} else {
			res.RedisClient = redisClient
		}
	}

	// Connect to RabbitMQ for publishing pattern events
	if cfg.RabbitMQHost != "" {
		queueClient, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		} else {
			res.QueueClient = queueClient
		}
	}

	patternApp.Run(cfg, log, res, filter)
}
