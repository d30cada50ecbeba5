package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4270,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/toolgate",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Import: ImportConfig{
			FetchTimeoutSeconds: 30,
			MaxSpecSizeMB:       4,
			DefaultVisibility:   "public",
		},
	}
}
