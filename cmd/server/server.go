package main

import (
	"fmt"

	"codeberg.org/papergen/server/internal/analysis"
	"codeberg.org/papergen/server/internal/config"
	"codeberg.org/papergen/server/internal/generation"
	"codeberg.org/papergen/server/internal/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// creates and configures a new gateway instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:     cfg,
		generation: generation.NewClient(cfg.GenerationServiceURL, cfg.GenerationTimeout),
		analyzer:   analysis.NewAcknowledger(),
		throttle:   rate.NewLimiter(rate.Limit(cfg.GenerationRate), cfg.GenerationBurst),
		router:     router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	logger.Info("generation relay configured",
		"base_url", server.generation.BaseURL(),
		"timeout", cfg.GenerationTimeout,
		"rate_per_second", cfg.GenerationRate,
		"burst", cfg.GenerationBurst,
	)

	return server, nil
}
