package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4310,
			Host: "localhost",
		},
		Feed: FeedConfig{
			Origin:         "http://localhost:4311",
			DeployPrefix:   "/daily-investment-ideas",
			TimeoutSeconds: 10,
		},
		Refresh: RefreshConfig{
			Schedule: "",
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			MaxEntries: 64,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/ideas",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}
