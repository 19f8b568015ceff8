package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("PORT", "")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ProviderGemini, cfg.Advisor.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Advisor.Model)
	assert.False(t, cfg.Advisor.Enabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.NarrativePerMinute)
	assert.Equal(t, 15*time.Second, GetDuration(cfg.Server.ReadTimeout))
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("REDIS_ADDRESS", "cache:6379")
	t.Setenv("ADVISOR_MODEL_OVERRIDE", "gemini-2.5-flash")

	cfg, err := LoadFromFile(writeConfig(t, `
advisor:
  model: ${ADVISOR_MODEL_OVERRIDE}
  temperature: 0.4
`))
	require.NoError(t, err)

	assert.True(t, cfg.Advisor.Enabled())
	assert.Equal(t, "gemini-2.5-flash", cfg.Advisor.Model)
	assert.InDelta(t, 0.4, cfg.Advisor.Temperature, 1e-9)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
}

func TestLoadFromFile_OpenAIDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadFromFile(writeConfig(t, "advisor:\n  provider: openai\n"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Advisor.Model)
	assert.True(t, cfg.Advisor.Enabled())
}

func TestLoadFromFile_RateLimitDisabled(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
rate_limit:
  analysis_per_minute: -1
  narrative_per_minute: 0
`))
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.RateLimit.AnalysisPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.NarrativePerMinute)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "advisor:\n  provider: claude\n"))
	assert.ErrorContains(t, err, "advisor.provider")

	_, err = LoadFromFile(writeConfig(t, "advisor:\n  temperature: 3\n"))
	assert.ErrorContains(t, err, "temperature")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
