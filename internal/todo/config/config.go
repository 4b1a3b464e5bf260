// Package config holds the todo service configuration.
package config

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	pkgconfig "gotodo/pkg/config"
	"gotodo/pkg/logger"
)

const (
	serviceName = "todo"

	LogConfigLoaded     = "todo configuration loaded"
	ErrFailedLoadConfig = "failed to load todo configuration"
	ErrInvalidConfig    = "invalid todo configuration"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the full service configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Paging   PagingConfig   `yaml:"paging"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load reads the optional file at path, then the environment.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("locale", cfg.Paging.Locale),
		zap.String("log_level", cfg.Logging.Level),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}

// Validate checks values that tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Paging.DefaultPageSize <= 0 {
		return fmt.Errorf("paging default page size must be positive, got %d", c.Paging.DefaultPageSize)
	}
	if _, err := c.Paging.GetLanguage(); err != nil {
		return err
	}
	return nil
}

// StorageConfig selects the repository implementation.
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"TODO_STORAGE_DRIVER" env-default:"memory"`
	SQLitePath string `yaml:"sqlite_path" env:"TODO_SQLITE_PATH" env-default:"todo.db"`
}

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"TODO_POSTGRES_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"TODO_POSTGRES_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"TODO_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"TODO_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"TODO_POSTGRES_DB" env-default:"todo"`
	MinConn       int    `yaml:"min_conn" env:"TODO_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"TODO_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"TODO_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/todo"`
}

// GetDSN returns the keyword/value connection string for pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL form used by migrations.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// RedisConfig configures the task cache.
type RedisConfig struct {
	Enabled    bool          `yaml:"enabled" env:"TODO_REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"TODO_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"TODO_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"TODO_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"TODO_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"TODO_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"TODO_REDIS_TIMEOUT" env-default:"3s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"TODO_REDIS_DEFAULT_TTL" env-default:"15m"`
}

func (c *RedisConfig) GetHost() string           { return c.Host }
func (c *RedisConfig) GetPort() int              { return c.Port }
func (c *RedisConfig) GetPassword() string       { return c.Password }
func (c *RedisConfig) GetDB() int                { return c.DB }
func (c *RedisConfig) GetPoolSize() int          { return c.PoolSize }
func (c *RedisConfig) GetTimeout() time.Duration { return c.Timeout }

// HTTPConfig configures the JSON API server.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"TODO_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"TODO_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TODO_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TODO_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress returns host:port.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PagingConfig holds listing defaults.
type PagingConfig struct {
	DefaultPageSize int    `yaml:"default_page_size" env:"TODO_DEFAULT_PAGE_SIZE" env-default:"20"`
	Locale          string `yaml:"locale" env:"TODO_LOCALE" env-default:"und"`
}

// GetLanguage parses Locale as a BCP 47 tag.
func (c *PagingConfig) GetLanguage() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"TODO_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"TODO_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps Mode to a logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig holds the graceful shutdown deadline in seconds.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"TODO_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout returns the deadline as a Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
