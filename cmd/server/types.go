package main

import (
	"codeberg.org/papergen/server/internal/analysis"
	"codeberg.org/papergen/server/internal/config"
	"codeberg.org/papergen/server/internal/generation"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// holds all dependencies and state for the gateway
type Server struct {
	config     *config.Config
	generation *generation.Client
	analyzer   analysis.Analyzer
	throttle   *rate.Limiter
	router     *gin.Engine
}
