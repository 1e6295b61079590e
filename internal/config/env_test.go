package config

import (
	"testing"
	"time"

	"codeberg.org/papergen/server/internal/submit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	t.Setenv("GENERATION_SERVICE_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, DefaultGenerationServiceURL, cfg.GenerationServiceURL)
	assert.Equal(t, DefaultGatewayURL, cfg.GatewayURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, submit.PolicyStrict, cfg.InputPolicy)
	assert.Equal(t, time.Duration(0), cfg.GenerationTimeout, "no timeout unless configured")
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
}

func TestLoadEnvironmentVariables_Overrides(t *testing.T) {
	t.Setenv("GENERATION_SERVICE_URL", "https://gen.internal:8443/")
	t.Setenv("GENERATION_TIMEOUT", "90s")
	t.Setenv("INPUT_POLICY", "REPO_FIRST")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PAPERGEN_LOG_FILE", "/tmp/papergen.log")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "https://gen.internal:8443", cfg.GenerationServiceURL, "trailing slash is trimmed")
	assert.Equal(t, 90*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, submit.PolicyRepoFirst, cfg.InputPolicy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/tmp/papergen.log", cfg.LogFile)
}

func TestLoadEnvironmentVariables_Timeout(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{val: "300", want: 300 * time.Second},
		{val: " 45 ", want: 45 * time.Second},
		{val: "0", want: 0},
		{val: "2m", want: 2 * time.Minute},
		{val: "1500ms", want: 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("GENERATION_TIMEOUT", tt.val)

			cfg, err := LoadEnvironmentVariables()

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.GenerationTimeout)
		})
	}
}

func TestLoadEnvironmentVariables_LegacyBackendVariable(t *testing.T) {
	t.Setenv("GENERATION_SERVICE_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://backend:5000")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000", cfg.GenerationServiceURL)
}

func TestLoadEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "non-http service url", key: "GENERATION_SERVICE_URL", val: "ftp://x", want: "GENERATION_SERVICE_URL"},
		{name: "service url without host", key: "GENERATION_SERVICE_URL", val: "http://", want: "no host"},
		{name: "unknown policy", key: "INPUT_POLICY", val: "newest_wins", want: "INPUT_POLICY"},
		{name: "negative timeout", key: "GENERATION_TIMEOUT", val: "-5s", want: "GENERATION_TIMEOUT"},
		{name: "unparseable timeout", key: "GENERATION_TIMEOUT", val: "soon", want: "GENERATION_TIMEOUT"},
		{name: "negative bare timeout", key: "GENERATION_TIMEOUT", val: "-30", want: "GENERATION_TIMEOUT"},
		{name: "zero burst", key: "GENERATION_BURST", val: "0", want: "GENERATION_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadEnvironmentVariables()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseTUIFlags(t *testing.T) {
	flags, err := ParseTUIFlags([]string{"--once", "--repo", "https://github.com/x/y", "--docs-file", "README.md"})

	require.NoError(t, err)
	assert.True(t, flags.Once)
	assert.Equal(t, "https://github.com/x/y", flags.Repo)
	assert.Equal(t, "README.md", flags.DocsFile)
	assert.Empty(t, flags.Docs)

	_, err = ParseTUIFlags([]string{"--unknown"})
	assert.Error(t, err)
}
