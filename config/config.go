package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// A missing or weak signing secret must abort startup: a server without
	// one cannot verify any token it issued.
	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"2160h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`

	// Days a soft-deleted task is kept before the sweeper purges it.
	// 0 keeps deleted tasks forever.
	TaskRetentionDays int `env:"TASK_RETENTION_DAYS" envDefault:"0" validate:"min=0"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
