// Manages server configuration stored in config.yaml.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig stores all server-wide configuration.
// Loaded from config.yaml, created with defaults if missing.
type ServerConfig struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`

	// StorageDir is where document, folder and preview files live. Relative
	// paths are resolved against the working directory.
	StorageDir string `yaml:"storage_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins lists allowed browser origins. Empty allows any origin,
	// which suits the single-user localhost deployment.
	CORSOrigins []string `yaml:"cors_origins"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `yaml:"rate_limits"`

	// PreviewQueueSize bounds the background preview generation queue.
	PreviewQueueSize int `yaml:"preview_queue_size"`

	// History enables the git change journal over the storage directory.
	History bool `yaml:"history"`
}

// RateLimits defines rate limiting configuration (requests per minute).
type RateLimits struct {
	// WriteRatePerMin limits write operations (POST/PUT/DELETE).
	// 0 means unlimited.
	WriteRatePerMin int `yaml:"write_rate_per_min"`

	// ReadRatePerMin limits read operations.
	// 0 means unlimited.
	ReadRatePerMin int `yaml:"read_rate_per_min"`
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	if r.ReadRatePerMin < 0 {
		return errors.New("read_rate_per_min must be non-negative")
	}
	return nil
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		WriteRatePerMin: 600,  // 600 req/min for writes
		ReadRatePerMin:  6000, // 6k req/min for reads
	}
}

// DefaultServerConfig returns the configuration used when config.yaml is
// absent.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:             ":3001",
		StorageDir:       "storage",
		LogLevel:         "info",
		RateLimits:       DefaultRateLimits(),
		PreviewQueueSize: 256,
		History:          true,
	}
}

// Validate checks that the configuration is valid.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.StorageDir == "" {
		return errors.New("storage_dir is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.PreviewQueueSize <= 0 {
		return errors.New("preview_queue_size must be positive")
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	return nil
}

// LoadServerConfig loads configuration from dataDir/config.yaml.
// Creates the file with defaults if it doesn't exist.
func LoadServerConfig(dataDir string) (*ServerConfig, error) {
	path := filepath.Join(dataDir, "config.yaml")

	cfg := DefaultServerConfig()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		// File doesn't exist, create it with defaults.
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &cfg, nil
}

// Save saves configuration to dataDir/config.yaml.
func (c *ServerConfig) Save(dataDir string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config.yaml: %w", err)
	}
	return nil
}
