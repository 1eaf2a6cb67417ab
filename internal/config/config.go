package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the mock server settings. Precedence: defaults, then the
// optional YAML file, then environment variables.
type Config struct {
	Addr        string
	LogLevel    string
	LogJSON     bool
	LogFile     string
	StreamDelay time.Duration
}

func Default() Config {
	return Config{
		Addr:        "4096",
		LogLevel:    "info",
		StreamDelay: 100 * time.Millisecond,
	}
}

// fileConfig is the YAML shape; durations are strings ("100ms").
type fileConfig struct {
	Addr        string `yaml:"addr"`
	LogLevel    string `yaml:"log_level"`
	LogJSON     *bool  `yaml:"log_json"`
	LogFile     string `yaml:"log_file"`
	StreamDelay string `yaml:"stream_delay"`
}

func Load(path string) (Config, error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		if fc.Addr != "" {
			cfg.Addr = fc.Addr
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = fc.LogLevel
		}
		if fc.LogJSON != nil {
			cfg.LogJSON = *fc.LogJSON
		}
		if fc.LogFile != "" {
			cfg.LogFile = fc.LogFile
		}
		if fc.StreamDelay != "" {
			d, err := time.ParseDuration(fc.StreamDelay)
			if err != nil {
				return cfg, fmt.Errorf("parse stream_delay: %w", err)
			}
			cfg.StreamDelay = d
		}
	}

	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.LogJSON = v == "true"
	}
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	if v := os.Getenv("STREAM_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse STREAM_DELAY: %w", err)
		}
		cfg.StreamDelay = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
