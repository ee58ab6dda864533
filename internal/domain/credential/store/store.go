// Package store persists the institution's bearer token. At most one
// token is live at a time; its presence is the sole truth for whether
// the client is authenticated.
package store

import "context"

// Store defines the behaviour required by the session controller.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (map[string]any, error)
	Close(ctx context.Context) error
}

// Config describes the high level store selection parameters.
type Config struct {
	Driver    string
	Namespace string
	Redis     *RedisConfig
}

// DefaultNamespace is the well-known key the token lives under.
const DefaultNamespace = "veritas:auth_token"

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}
