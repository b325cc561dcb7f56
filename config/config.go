package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpPort           uint16        `envconfig:"PORTAL_HTTP_SERVER_PORT" default:"8080" required:"true"`
	JwtSecret          string        `envconfig:"PORTAL_JWT_SECRET" default:"insecure-development-secret"`
	JwtExpiration      time.Duration `envconfig:"PORTAL_JWT_EXPIRATION" default:"168h"`
	ReminderSweepEvery time.Duration `envconfig:"PORTAL_REMINDER_SWEEP_INTERVAL" default:"1h"`
	Production         bool          `envconfig:"PORTAL_PRODUCTION_MODE"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
