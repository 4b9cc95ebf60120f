// Package config loads application settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

// Environment is the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment normalises v; unknown values fall back to Development.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

type Config struct {
	Env               string   `envconfig:"APP_ENV" default:"development"`
	Port              string   `envconfig:"APP_PORT" default:"8080"`
	DBDriver          string   `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN             string   `envconfig:"DB_DSN"`
	SessionSecret     string   `envconfig:"SESSION_SECRET" default:"dev_fallback_secret"`
	UploadDir         string   `envconfig:"UPLOAD_DIR" default:"uploads"`
	DefaultCurrency   string   `envconfig:"DEFAULT_CURRENCY" default:"USD"`
	LogLevel          string   `envconfig:"LOG_LEVEL" default:"info"`
	DefaultCategories []string `envconfig:"DEFAULT_CATEGORIES" default:"Electronics,Vehicles,Real estate,Jobs,Services,Home and garden"`
}

// DotenvFiles are tried in order; later files override earlier ones.
// The parent paths cover running from cmd/<name>.
var DotenvFiles = []string{"../../.env", "../.env", ".env"}

// Load reads the .env files that exist and then processes the environment.
func Load() (*Config, error) {
	for _, name := range DotenvFiles {
		if err := godotenv.Overload(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
	}
	return FromEnv()
}

// FromEnv processes the environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("DB_DSN is empty (check your .env)")
		}
	case "sqlite":
		if c.DBDSN == "" {
			c.DBDSN = "marketplace.db"
		}
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported (postgres, sqlite)", c.DBDriver)
	}
	unit, err := currency.ParseISO(strings.ToUpper(c.DefaultCurrency))
	if err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY %q: %w", c.DefaultCurrency, err)
	}
	c.DefaultCurrency = unit.String()
	if c.Environment().IsProduction() && c.SessionSecret == "dev_fallback_secret" {
		return errors.New("SESSION_SECRET must be set in production")
	}
	return nil
}

func (c *Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
