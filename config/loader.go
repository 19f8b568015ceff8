package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (optional), merges config.<APP_ENVIRONMENT>.yaml
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			// unset variables expand to "" so env overrides can still apply
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideFromEnv(cfg *Config) {
	if cfg.Advisor.GeminiAPIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Advisor.GeminiAPIKey = val
		} else if val := os.Getenv("API_KEY"); val != "" {
			cfg.Advisor.GeminiAPIKey = val
		}
	}
	if cfg.Advisor.OpenAIAPIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Advisor.OpenAIAPIKey = val
		}
	}
	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
		cfg.Redis.Enabled = true
	}
	if val := os.Getenv("PORT"); val != "" && cfg.Server.Address == "" {
		cfg.Server.Address = ":" + val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "rental-analyzer"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		// narrative generation can be slow
		cfg.Server.WriteTimeout = 90000
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 86400
	}

	if cfg.Advisor.Provider == "" {
		cfg.Advisor.Provider = ProviderGemini
	}
	if cfg.Advisor.Model == "" {
		if cfg.Advisor.Provider == ProviderOpenAI {
			cfg.Advisor.Model = "gpt-4o-mini"
		} else {
			cfg.Advisor.Model = "gemini-2.5-pro"
		}
	}
	if cfg.Advisor.OpenAIURL == "" {
		cfg.Advisor.OpenAIURL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Advisor.Timeout == 0 {
		cfg.Advisor.Timeout = 60000
	}
	if cfg.Advisor.MaxTokens == 0 {
		cfg.Advisor.MaxTokens = 2048
	}

	if cfg.RateLimit.AnalysisPerMinute == 0 {
		cfg.RateLimit.AnalysisPerMinute = 120
	}
	if cfg.RateLimit.NarrativePerMinute == 0 {
		cfg.RateLimit.NarrativePerMinute = 5
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Advisor.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("advisor.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.Advisor.Provider)
	}

	if cfg.Advisor.Temperature < 0 || cfg.Advisor.Temperature > 2 {
		return fmt.Errorf("advisor.temperature must be between 0 and 2")
	}
	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when redis is enabled")
	}

	return nil
}
