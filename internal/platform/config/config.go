package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts yaml values like "30s" as well as raw nanosecond counts.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err == nil {
		parsed, perr := time.ParseDuration(raw)
		if perr != nil {
			return perr
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Storage     StorageConfig     `yaml:"storage"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Import      ImportConfig      `yaml:"import"`
}

// ServerConfig points the client at the certificate backend.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout Duration      `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// StorageConfig locates the local SQLite database shared by the
// credential store and the submission journal.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

type CredentialsConfig struct {
	Store StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	Type      string           `yaml:"type"`
	Namespace string           `yaml:"namespace,omitempty"`
	Redis     RedisStoreConfig `yaml:"redis,omitempty"`
}

type RedisStoreConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// ImportConfig tunes the batch certificate import command.
type ImportConfig struct {
	Concurrency int `yaml:"concurrency"`
}
