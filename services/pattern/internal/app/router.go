package app

import (
	"context"
	"net/http"
	"time"

	"pattern-share/pkg/config"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/metrics"
	"pattern-share/pkg/middleware"
	"pattern-share/services/pattern/docs"
	patternHTTP "pattern-share/services/pattern/internal/controller/http"
	"pattern-share/services/pattern/internal/repo"
	"pattern-share/services/pattern/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const healthTimeout = 2 * time.Second

func NewRouter(
	cfg *config.Config,
	log *logger.Logger,
	patternRepo repo.PatternRepository,
	patternUseCase usecase.PatternUseCase,
	m *metrics.Metrics,
) *gin.Engine {
	patternHandler := patternHTTP.NewPatternHandler(patternUseCase, log)

	r := gin.Default()
	r.Use(m.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := patternRepo.Ping(ctx); err != nil {
			log.Error("Health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Swagger documentation
	docs.SwaggerInfo.BasePath = cfg.APIPrefix
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/", patternHandler.Home)
		api.GET("/pattern/:slug", patternHandler.GetPattern)
		api.GET("/search", patternHandler.SearchPatterns)
		api.POST("/upload", patternHandler.UploadPattern)
		api.POST("/like/:slug", patternHandler.LikePattern)
	}

	return r
}
