package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	IdleTimeout     int    `mapstructure:"idle_timeout"`     // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig controls the narrative cache. When disabled an in-memory cache is used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

type AdvisorConfig struct {
	Provider     string  `mapstructure:"provider"` // "gemini" or "openai"
	Model        string  `mapstructure:"model"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string  `mapstructure:"openai_api_key"`
	OpenAIURL    string  `mapstructure:"openai_url"`
	Timeout      int     `mapstructure:"timeout"` // milliseconds
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
}

// Enabled reports whether the configured provider has credentials.
func (a AdvisorConfig) Enabled() bool {
	switch a.Provider {
	case ProviderGemini:
		return a.GeminiAPIKey != ""
	case ProviderOpenAI:
		return a.OpenAIAPIKey != ""
	}
	return false
}

// RateLimitConfig is requests per minute per client. 0 selects the default,
// a negative value disables limiting for that route.
type RateLimitConfig struct {
	AnalysisPerMinute  int `mapstructure:"analysis_per_minute"`
	NarrativePerMinute int `mapstructure:"narrative_per_minute"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// String renders the listen address and timeouts for startup logs.
func (s ServerConfig) String() string {
	return fmt.Sprintf("%s (read=%s write=%s)", s.Address, GetDuration(s.ReadTimeout), GetDuration(s.WriteTimeout))
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
