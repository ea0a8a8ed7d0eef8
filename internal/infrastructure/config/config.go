package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Ledger API
	LedgerBaseURL    string        `env:"LEDGER_BASE_URL"    envDefault:"http://localhost:8080"`
	LedgerTimeout    time.Duration `env:"LEDGER_TIMEOUT"     envDefault:"10s"`
	LedgerMaxRetries int           `env:"LEDGER_MAX_RETRIES" envDefault:"3"`

	// Push channel
	RedisURL        string `env:"REDIS_URL"         envDefault:"redis://localhost:6379"`
	PushTopicPrefix string `env:"PUSH_TOPIC_PREFIX" envDefault:"ledger.updates"`

	// Reconciliation
	RefreshOnReconnect bool          `env:"REFRESH_ON_RECONNECT" envDefault:"true"`
	RefreshInterval    time.Duration `env:"REFRESH_INTERVAL"     envDefault:"0"`

	// Session (token takes precedence when both are set)
	SessionToken     string `env:"SESSION_TOKEN"      envDefault:""`
	SessionJWTSecret string `env:"SESSION_JWT_SECRET" envDefault:""`
	AccountID        string `env:"ACCOUNT_ID"         envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8090"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
