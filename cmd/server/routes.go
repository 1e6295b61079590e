package main

import (
	"codeberg.org/papergen/server/api/rest/analyze"
	"codeberg.org/papergen/server/api/rest/health"
	"codeberg.org/papergen/server/api/rest/papers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(server.config.AllowedOrigins))

	router.GET("/health", health.Handler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !server.config.IsProduction() {
		router.GET("/swagger/doc.json", SwaggerHandler)
	}

	limit, err := RateLimitMiddleware(server.config.RateLimit)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Use(limit)

	{
		api.GET("/ping", health.PingHandler)

		analyze.RegisterRoutes(api, server.analyzer)
		papers.RegisterRoutes(api, server.generation, server.throttle)
	}

	return nil
}
