package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Источники состава команды
const (
	RosterSourceFile     = "file"
	RosterSourcePostgres = "postgres"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Roster   RosterConfig   // Откуда загружать состав команды
	Database DatabaseConfig // Настройки подключения к БД (для ROSTER_SOURCE=postgres)
	Log      LogConfig      // Настройки логирования
	Metrics  MetricsConfig  // Настройки Prometheus
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string        `envconfig:"SERVER_PORT" default:"8080"`
	Host           string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	EntryPath      string        `envconfig:"ENTRY_PATH" default:"/CoveoBlitz"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	MaxBodyBytes   int64         `envconfig:"MAX_BODY_BYTES" default:"10485760"`
}

// RosterConfig содержит настройки загрузки состава команды
type RosterConfig struct {
	Source   string `envconfig:"ROSTER_SOURCE" default:"file"`
	File     string `envconfig:"ROSTER_FILE" default:"teamMember.json"`
	TeamName string `envconfig:"TEAM_NAME" default:"Beautiful Brown"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"blitz"`
	Password string `envconfig:"DB_PASSWORD" default:"blitz_pass"`
	Name     string `envconfig:"DB_NAME" default:"blitz"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"4"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"prod"` // dev, prod или уровень zap
}

// MetricsConfig содержит настройки Prometheus
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// UsesDatabase сообщает, нужно ли подключение к БД
func (c *Config) UsesDatabase() bool {
	return c.Roster.Source == RosterSourcePostgres
}

// Validate проверяет значения, которые envconfig проверить не может
func (c *Config) Validate() error {
	switch c.Roster.Source {
	case RosterSourceFile:
		if c.Roster.File == "" {
			return errors.New("ROSTER_FILE is required for file roster source")
		}
	case RosterSourcePostgres:
	default:
		return fmt.Errorf("unknown roster source %q", c.Roster.Source)
	}

	if c.Roster.TeamName == "" {
		return errors.New("TEAM_NAME must not be empty")
	}
	if c.Server.EntryPath == "" || c.Server.EntryPath[0] != '/' {
		return fmt.Errorf("ENTRY_PATH must start with '/': %q", c.Server.EntryPath)
	}
	return nil
}

// Load читает .env (если есть) и конфигурацию из переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
