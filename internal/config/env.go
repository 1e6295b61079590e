package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"codeberg.org/papergen/server/internal/submit"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultGenerationServiceURL = "http://127.0.0.1:5000"
	DefaultGatewayURL           = "http://127.0.0.1:3000"
	DefaultPort                 = "3000"
	DefaultRateLimit            = "60-M"
)

// loads configuration from environment variables (and .env when present)
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("generation_service_url", DefaultGenerationServiceURL)
	v.SetDefault("generation_timeout", "0")
	v.SetDefault("generation_rate_per_second", 5)
	v.SetDefault("generation_burst", 10)
	v.SetDefault("gateway_url", DefaultGatewayURL)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("input_policy", string(submit.PolicyStrict))
	v.SetDefault("artifact_dir", ".")

	// the frontend historically read the backend address from NEXT_PUBLIC_BACKEND_URL
	_ = v.BindEnv("generation_service_url", "GENERATION_SERVICE_URL", "NEXT_PUBLIC_BACKEND_URL") //nolint:errcheck // only fails without a key
	_ = v.BindEnv("log_file", "PAPERGEN_LOG_FILE")                                             //nolint:errcheck // only fails without a key

	return v
}

func load(v *viper.Viper) (*Config, error) {
	serviceURL := strings.TrimRight(strings.TrimSpace(v.GetString("generation_service_url")), "/")
	if err := validateBaseURL(serviceURL); err != nil {
		return nil, fmt.Errorf("GENERATION_SERVICE_URL: %w", err)
	}

	gatewayURL := strings.TrimRight(strings.TrimSpace(v.GetString("gateway_url")), "/")
	if err := validateBaseURL(gatewayURL); err != nil {
		return nil, fmt.Errorf("GATEWAY_URL: %w", err)
	}

	policy, err := submit.ParsePolicy(v.GetString("input_policy"))
	if err != nil {
		return nil, fmt.Errorf("INPUT_POLICY: %w", err)
	}

	timeout, err := parseTimeout(v.GetString("generation_timeout"))
	if err != nil {
		return nil, fmt.Errorf("GENERATION_TIMEOUT: %w", err)
	}

	rate := v.GetFloat64("generation_rate_per_second")
	burst := v.GetInt("generation_burst")
	if rate <= 0 || burst <= 0 {
		return nil, fmt.Errorf("GENERATION_RATE_PER_SECOND and GENERATION_BURST must be positive")
	}

	return &Config{
		Environment:          v.GetString("environment"),
		Port:                 v.GetString("port"),
		GenerationServiceURL: serviceURL,
		GenerationTimeout:    timeout,
		GenerationRate:       rate,
		GenerationBurst:      burst,
		GatewayURL:           gatewayURL,
		AllowedOrigins:       splitList(v.GetString("cors_allowed_origins")),
		RateLimit:            v.GetString("rate_limit"),
		InputPolicy:          policy,
		ArtifactDir:          v.GetString("artifact_dir"),
		LogFile:              v.GetString("log_file"),
	}, nil
}

// accepts a go duration ("90s", "5m") or a bare number of seconds
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	var timeout time.Duration
	if secs, err := strconv.Atoi(raw); err == nil {
		timeout = time.Duration(secs) * time.Second
	} else {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		timeout = d
	}

	if timeout < 0 {
		return 0, fmt.Errorf("must not be negative, got %q", raw)
	}

	return timeout, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https, got %q", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("url has no host: %q", raw)
	}

	return nil
}

// splits a comma separated env value, dropping blanks
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
