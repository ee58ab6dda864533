package config

import "time"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: Duration(30 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "veritas-cli.log",
		},
		Storage: StorageConfig{
			DSN: "data/veritas.db",
		},
		Credentials: CredentialsConfig{
			Store: StoreConfig{
				Type:      "sqlite",
				Namespace: "veritas:auth_token",
			},
		},
		Import: ImportConfig{
			Concurrency: 4,
		},
	}
}
