package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"bartab"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"bartab"`
	}

	Auth struct {
		// Shared PIN that unlocks the admin surface (catalog mutation,
		// session rotation, transaction corrections).
		AdminPIN string `envconfig:"ADMIN_PIN" default:"0000"`
		// Secret used to sign the admin session cookie.
		Secret string `envconfig:"AUTH_SECRET" default:"change-me"`
	}

	HTTP struct {
		// Origins allowed to call the API with credentials (the web frontend).
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	QR struct {
		// Account reference (IBAN) embedded in payment QR payloads.
		Account        string `envconfig:"QR_ACCOUNT" default:""`
		Currency       string `envconfig:"QR_CURRENCY" default:"EUR"`
		VariableSymbol string `envconfig:"QR_VARIABLE_SYMBOL" default:""`
		Message        string `envconfig:"QR_MESSAGE" default:"bar tab"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
