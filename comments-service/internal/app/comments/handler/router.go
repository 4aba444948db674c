package handler

import (
	"fmt"

	"commentwidget/comments-service/internal/app/comments/config"
	"commentwidget/pkg/logger"
	"commentwidget/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "comments-service"

// SetupRoutes настраивает маршруты Comments Service
// Все API под /api, /metrics отдает Prometheus
func SetupRoutes(commentHandler *CommentHandler, healthHandler *HealthHandler, cfg config.ServerConfig) (*gin.Engine, error) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName, "/metrics", "/api/health", "/api/health/ready"))

	corsCfg := corsConfig(cfg.AllowedOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS settings: %w", err)
	}
	router.Use(cors.New(corsCfg))

	// nil - не доверять X-Forwarded-For, ClientIP берется из соединения
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Liveness)
		api.GET("/health/ready", healthHandler.Readiness)

		api.GET("/comments", commentHandler.ListComments)
		api.POST("/comments", commentHandler.CreateComment)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader}
	cfg.ExposeHeaders = []string{logger.RequestIDHeader}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	return cfg
}
