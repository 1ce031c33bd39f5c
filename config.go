package idosoms

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration for the application shell.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LoginPath   string `envconfig:"APP_LOGIN_PATH" default:"/login"`
	DefaultPath string `envconfig:"APP_DEFAULT_PATH" default:"/dashboard"`

	DSN string `envconfig:"APP_DSN" default:"file::memory:?cache=shared"`

	SigningKey     string        `envconfig:"APP_SIGNING_KEY" required:"true"`
	ActionTokenTTL time.Duration `envconfig:"APP_ACTION_TOKEN_TTL" default:"24h"`
	ReauthWindow   time.Duration `envconfig:"APP_REAUTH_WINDOW" default:"5m"`

	SignInRatePerMin int `envconfig:"APP_SIGNIN_RATE_PER_MIN" default:"10"`
	SignInBurst      int `envconfig:"APP_SIGNIN_BURST" default:"5"`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:""`
	ProfileCacheTTL time.Duration `envconfig:"PROFILE_CACHE_TTL" default:"5m"`

	MailFrom string `envconfig:"MAIL_FROM" default:"no-reply@idosoms.local"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SigningKey == "" {
		return nil, errors.New("signing key must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
