// Package config loads the application configuration from a YAML file
// with environment variable overrides. Every field has a default, so
// the server runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Expiry string `yaml:"expiry"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080", CORSOrigins: []string{"*"}},
		Database: DatabaseConfig{Path: "./data/ajo.db"},
		JWT:      JWTConfig{Secret: "dev-secret-change-me", Expiry: "24h"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the config file at path (if it exists) over the defaults,
// then applies environment overrides: AJO_ADDR, AJO_DB_PATH,
// AJO_JWT_SECRET, AJO_JWT_EXPIRY, LOG_LEVEL.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// TokenExpiry parses the JWT expiry as a duration, falling back to 24h.
func (c *Config) TokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.JWT.Expiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AJO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("AJO_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Addr = fmt.Sprintf(":%d", p)
		}
	}
	if v := os.Getenv("AJO_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("AJO_JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("AJO_JWT_EXPIRY"); v != "" {
		cfg.JWT.Expiry = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
