package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kosarica/catalog-service/internal/decode"
	"github.com/kosarica/catalog-service/internal/middleware"
)

// RouterConfig holds what NewRouter needs to wire the service
type RouterConfig struct {
	Decoder        *decode.Decoder
	MaxBodyBytes   int64
	InternalAPIKey string
	RateLimit      middleware.RateLimiterConfig
	Logger         *zerolog.Logger
}

// NewRouter builds the gin engine with public and internal routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if cfg.Logger != nil {
		router.Use(middleware.RequestLogger(cfg.Logger))
	}

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(cfg.InternalAPIKey))
	internal.Use(middleware.RateLimitMiddleware(middleware.NewClientRateLimiter(cfg.RateLimit)))
	{
		internal.GET("/health", HealthCheck)

		decodeHandler := NewDecodeHandler(cfg.Decoder, cfg.MaxBodyBytes)
		decodeHandler.Register(internal.Group("/decode"))
	}

	return router
}
