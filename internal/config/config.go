package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Till"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"till"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// Shared secret of the auth provider's HS256 tokens. Empty disables verification.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Till struct {
		Timezone     string        `envconfig:"TILL_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
		PollInterval time.Duration `envconfig:"TILL_POLL_INTERVAL" default:"30s"`
		// Restaurant the TUI operates on.
		RestaurantID string `envconfig:"TILL_RESTAURANT_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location resolves the till time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Till.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.Till.Timezone, err)
	}

	return loc, nil
}

// Restaurant parses the configured restaurant id.
func (c *Config) Restaurant() (uuid.UUID, error) {
	if c.Till.RestaurantID == "" {
		return uuid.Nil, fmt.Errorf("TILL_RESTAURANT_ID is not set")
	}

	id, err := uuid.Parse(c.Till.RestaurantID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing TILL_RESTAURANT_ID: %w", err)
	}

	return id, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
