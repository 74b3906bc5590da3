package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucianli/cookbook-graphql/internal/middleware"
)

// Deps are the handlers and middleware settings the routes are built from
type Deps struct {
	Logger      *slog.Logger
	GraphQL     http.Handler
	Health      gin.HandlerFunc
	CORSOrigins []string
	// RateLimiter is optional; requests are not limited when it is nil
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.Security())
	router.Use(middleware.CORS(deps.CORSOrigins))

	router.GET("/health", deps.Health)

	graphql := router.Group("/graphql")
	if deps.RateLimiter != nil {
		graphql.Use(deps.RateLimiter.Middleware())
	}
	{
		graphql.POST("", gin.WrapH(deps.GraphQL))
		graphql.GET("", gin.WrapH(deps.GraphQL))
	}

	router.NoRoute(middleware.NotFound())

	return router
}
