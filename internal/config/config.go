package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Feed    FeedConfig    `toml:"feed"`
	Refresh RefreshConfig `toml:"refresh"`
	Cache   CacheConfig   `toml:"cache"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	MCP     MCPConfig     `toml:"mcp"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// FeedConfig contains idea-feed origin settings.
// Origin is scheme://host[:port] of the server publishing the JSON feed.
// The API base path under the origin is resolved from the origin's host
// name (see feed.ResolveBasePath); DeployPrefix is the fixed deployment
// path used when the origin is not a local host.
type FeedConfig struct {
	Origin         string `toml:"origin"`
	DeployPrefix   string `toml:"deploy_prefix"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the feed HTTP timeout as a duration.
func (c *FeedConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RefreshConfig contains the optional background refresh schedule.
// An empty schedule disables the refresher entirely.
type RefreshConfig struct {
	Schedule string `toml:"schedule"`
}

// CacheConfig contains feed response cache settings.
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
	MaxEntries int `toml:"max_entries"`
}

// TTL returns the cache TTL as a duration.
func (c *CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
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
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// MCPConfig contains MCP endpoint settings.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
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

// applyEnvOverrides applies IDEAS_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("IDEAS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("IDEAS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if origin := os.Getenv("IDEAS_FEED_ORIGIN"); origin != "" {
		config.Feed.Origin = origin
	}
	if prefix := os.Getenv("IDEAS_FEED_DEPLOY_PREFIX"); prefix != "" {
		config.Feed.DeployPrefix = prefix
	}
	if schedule := os.Getenv("IDEAS_REFRESH_SCHEDULE"); schedule != "" {
		config.Refresh.Schedule = schedule
	}
	if badgerPath := os.Getenv("IDEAS_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("IDEAS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("IDEAS_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
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

// Validate checks mandatory configuration and returns a list of
// human-readable issues. An empty list means the config is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Feed.Origin == "" {
		issues = append(issues, "feed.origin is required (scheme://host of the idea feed)")
	}
	if c.Storage.Badger.Path == "" {
		issues = append(issues, "storage.badger.path is required")
	}

	return issues
}
