// Package redis wraps a go-redis client with the handful of operations the cache layer needs.
package redis

import "time"

// Defaults shared with the env-default tags of the service configuration.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config holds connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig returns a local connection config.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Source is implemented by service configs that carry Redis settings.
type Source interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
	GetTimeout() time.Duration
}

// NewConfigFrom copies settings out of a service config.
func NewConfigFrom(src Source) *Config {
	cfg := &Config{
		Host:     src.GetHost(),
		Port:     src.GetPort(),
		Password: src.GetPassword(),
		DB:       src.GetDB(),
		PoolSize: src.GetPoolSize(),
		Timeout:  src.GetTimeout(),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}
