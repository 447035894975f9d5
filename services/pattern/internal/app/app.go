package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pattern-share/pkg/cache"
	"pattern-share/pkg/config"
	"pattern-share/pkg/database"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/metrics"
	"pattern-share/pkg/moderation"
	"pattern-share/pkg/queue"
	"pattern-share/services/pattern/internal/repo"
	"pattern-share/services/pattern/internal/repo/document"
	"pattern-share/services/pattern/internal/repo/persistent"
	"pattern-share/services/pattern/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Resources holds the clients opened in main. Exactly one of DB and MongoDB
// is set; the Redis and RabbitMQ clients are nil when disabled or unreachable.
type Resources struct {
	DB          *gorm.DB
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	QueueClient *queue.Client
}

func Run(cfg *config.Config, log *logger.Logger, res Resources, filter *moderation.Filter) {
	// Initialize repositories
	var patternRepo repo.PatternRepository
	if res.MongoDB != nil {
		patternRepo = document.NewPatternRepository(res.MongoDB)
	} else {
		patternRepo = persistent.NewPatternRepository(res.DB)
	}

	m := metrics.New()

	// Initialize use cases
	opts := []usecase.Option{usecase.WithMetrics(m)}
	if res.RedisClient != nil {
		opts = append(opts, usecase.WithCache(cache.NewRedisCache(res.RedisClient), cfg.CacheTTL))
	}
	if res.QueueClient != nil {
		opts = append(opts, usecase.WithPublisher(res.QueueClient))
	}
	patternUseCase := usecase.NewPatternUseCase(patternRepo, filter, log, opts...)

	r := NewRouter(cfg, log, patternRepo, patternUseCase, m)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Pattern service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down pattern service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain in-flight requests before closing clients.
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	closeResources(ctx, log, res)

	log.Info("Pattern service exited")
}

func closeResources(ctx context.Context, log *logger.Logger, res Resources) {
	if res.DB != nil {
		if err := database.ClosePostgres(res.DB); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if res.MongoDB != nil {
		if err := database.CloseMongo(ctx, res.MongoDB); err != nil {
			log.Error("Error closing MongoDB: %v", err)
		}
	}

	if res.RedisClient != nil {
		if err := res.RedisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if res.QueueClient != nil {
		if err := res.QueueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}
}
