package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vat-directory/internal/domain/access"
	"github.com/yanqian/vat-directory/internal/infra/config"
	"github.com/yanqian/vat-directory/internal/infra/ratelimit"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// A nil limiter disables rate limiting.
func NewRouter(cfg *config.Config, handler *Handler, limiter ratelimit.Limiter, guard access.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		recoveryMiddleware(handler.logger),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api", rateLimitMiddleware(limiter, handler.logger))
	{
		api.GET("/metadata", handler.Metadata)
		api.POST("/generate", accessMiddleware(guard), handler.Generate)
		api.GET("/posts", handler.ListPosts)
		api.GET("/posts/:slug", handler.GetPost)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
