package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port           string `env:"PORT" envDefault:"5300"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	AuthServiceURL string `env:"AUTH_SERVICE_URL,required"`
	ServiceToken   string `env:"TRAFFIC_SERVICE_TOKEN,required"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"5m"`
	InvitationTTL     time.Duration `env:"INVITATION_TTL" envDefault:"168h"`
}

// Load parses the environment. godotenv runs earlier in main, so a local
// .env file is already merged in by the time this is called.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
