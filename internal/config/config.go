// Package config loads server settings from defaults, an optional YAML
// file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfigPath     = "DIAG_CONFIG"
	EnvProvider       = "DIAG_PROVIDER"
	EnvAPIKey         = "DIAG_API_KEY"
	EnvModel          = "DIAG_MODEL"
	EnvAddr           = "DIAG_ADDR"
	EnvSessionTTL     = "DIAG_SESSION_TTL_MINUTES"
	EnvLLMTimeout     = "DIAG_LLM_TIMEOUT_SECONDS"
	EnvAllowedOrigins = "DIAG_ALLOWED_ORIGINS"
	EnvDebug          = "DIAG_DEBUG"
)

// Config is the full application configuration.
type Config struct {
	Provider          string   `yaml:"provider"`
	APIKey            string   `yaml:"api_key"`
	Model             string   `yaml:"model"`
	Addr              string   `yaml:"addr"`
	SessionTTLMinutes int      `yaml:"session_ttl_minutes"`
	LLMTimeoutSeconds int      `yaml:"llm_timeout_seconds"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	Debug             bool     `yaml:"debug"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Provider:          "groq",
		Addr:              "localhost:8000",
		SessionTTLMinutes: 60,
		LLMTimeoutSeconds: 20,
	}
}

// SessionTTL converts the minute setting to a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// LLMTimeout converts the second setting to a duration.
func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// Load builds the configuration. path may be empty, in which case only
// DIAG_CONFIG (if set) names a file; a missing explicit file is an
// error, a missing default file is not.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProvider); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvSessionTTL); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SessionTTLMinutes = n
		}
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLMTimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvAllowedOrigins); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv(EnvDebug); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func (c Config) validate() error {
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("config: session_ttl_minutes must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.LLMTimeoutSeconds <= 0 {
		return fmt.Errorf("config: llm_timeout_seconds must be positive, got %d", c.LLMTimeoutSeconds)
	}
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	return nil
}
