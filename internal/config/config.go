package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Import  ImportConfig  `toml:"import"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// ImportConfig contains OpenAPI import pipeline settings.
type ImportConfig struct {
	// FetchTimeoutSeconds bounds the spec download so a run cannot hang.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
	// MaxSpecSizeMB caps the size of a fetched or inline specification.
	MaxSpecSizeMB int `toml:"max_spec_size_mb"`
	// DefaultVisibility is applied when a request omits visibility.
	DefaultVisibility string `toml:"default_visibility"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies TOOLGATE_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("TOOLGATE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TOOLGATE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("TOOLGATE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("TOOLGATE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if timeout := os.Getenv("TOOLGATE_FETCH_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			config.Import.FetchTimeoutSeconds = t
		}
	}
	if vis := os.Getenv("TOOLGATE_DEFAULT_VISIBILITY"); vis != "" {
		config.Import.DefaultVisibility = vis
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
// An empty list means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if strings.TrimSpace(c.Storage.Badger.Path) == "" {
		issues = append(issues, "storage.badger.path must not be empty")
	}
	if c.Import.FetchTimeoutSeconds <= 0 {
		issues = append(issues, fmt.Sprintf("import.fetch_timeout_seconds must be positive (got %d)", c.Import.FetchTimeoutSeconds))
	}
	if c.Import.MaxSpecSizeMB <= 0 {
		issues = append(issues, fmt.Sprintf("import.max_spec_size_mb must be positive (got %d)", c.Import.MaxSpecSizeMB))
	}
	switch c.Import.DefaultVisibility {
	case "private", "team", "public":
	default:
		issues = append(issues, fmt.Sprintf("import.default_visibility must be private, team or public (got %q)", c.Import.DefaultVisibility))
	}

	return issues
}
