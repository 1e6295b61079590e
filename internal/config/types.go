package config

import (
	"time"

	"codeberg.org/papergen/server/internal/submit"
)

// process-wide configuration, read once at startup and passed to every
// component that talks to the generation service
type Config struct {
	Environment string
	Port        string

	// base address of the generation service, shared by the relay route and the dispatcher
	GenerationServiceURL string
	GenerationTimeout    time.Duration
	GenerationRate       float64
	GenerationBurst      int

	// public address of this gateway, used by the tui for the analyze route
	GatewayURL string

	AllowedOrigins []string
	RateLimit      string // ulule limiter format, e.g. "60-M"

	InputPolicy submit.Policy
	ArtifactDir string
	LogFile     string
}

// returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// flags accepted by the tui binary
type Flags struct {
	Once     bool
	Repo     string
	Docs     string
	DocsFile string
}
