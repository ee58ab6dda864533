package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "veritas-client-go/internal/platform/errors"
)

// Loader reads configuration from a yaml file with environment overrides.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader for the given config path. An empty path
// falls back to config.yaml in the working directory.
func NewLoader(path string) *Loader {
	if path == "" {
		path = "config.yaml"
	}
	return &Loader{path: path, useDotEnv: true}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load merges defaults, the yaml file (when present) and VERITAS_*
// environment variables, in that order.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := ""

	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig, "loader.parse",
				"failed to parse config file", err)
		}
		path = l.path
	case os.IsNotExist(err):
		// defaults plus environment only
	default:
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "loader.read",
			"failed to read config file", err)
	}

	applyEnv(cfg)

	if cfg.Server.BaseURL == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "loader.validate",
			"server base_url must not be empty")
	}
	if cfg.Import.Concurrency <= 0 {
		cfg.Import.Concurrency = DefaultConfig().Import.Concurrency
	}

	return &Result{Config: cfg, Path: path}, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VERITAS_SERVER_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("VERITAS_SERVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("VERITAS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VERITAS_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("VERITAS_STORE_TYPE"); v != "" {
		cfg.Credentials.Store.Type = v
	}
	if v := os.Getenv("VERITAS_REDIS_ADDR"); v != "" {
		cfg.Credentials.Store.Redis.Addr = v
	}
}
