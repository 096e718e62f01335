package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level finbook.yaml configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Sync     SyncConfig     `yaml:"sync"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DatabaseConfig points at Postgres. An empty URL runs the server on
// in-memory storage (dev only; data dies with the process).
type DatabaseConfig struct {
	URL string `yaml:"url,omitempty"`
}

// RedisConfig points at the session cache. An empty address falls back
// to in-process sessions.
type RedisConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// SyncConfig controls the save scheduler's debounce window.
type SyncConfig struct {
	QuietPeriodMillis int `yaml:"quiet_period_ms"`
}

// QuietPeriod returns the debounce window as a duration.
func (s SyncConfig) QuietPeriod() time.Duration {
	return time.Duration(s.QuietPeriodMillis) * time.Millisecond
}

// Load reads a finbook.yaml file from disk and applies environment
// overrides (DATABASE_URL, REDIS_URL, PORT).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Sync: SyncConfig{
			QuietPeriodMillis: 2000,
		},
	}
}

func (c *Config) applyEnv() {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		c.Redis.Addr = addr
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
}
