package http

import (
	"github.com/gin-gonic/gin"

	"locates/internal/interfaces/http/handlers"
	"locates/internal/interfaces/http/middleware"
	"locates/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	health := handlers.NewHealthHandler(c.db)
	c.engine.GET("/health", health.HealthCheck)

	var syncLimit gin.HandlerFunc
	if c.rateLimiter != nil {
		syncLimit = c.rateLimiter.Limit()
	}

	routes.SetupLocateRoutes(c.engine, &routes.LocateRouteConfig{
		Handler:         c.locateHandler,
		ActorMiddleware: c.actorMiddleware,
		SyncRateLimit:   syncLimit,
	})
}
