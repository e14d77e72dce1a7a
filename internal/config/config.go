// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Dataset sources. DatasetDB wins over the CSV files when set; empty CSV
	// paths select the embedded sample data.
	ListingsFile string `env:"LISTINGS_FILE"`
	QuizFile     string `env:"QUIZ_FILE"`
	DatasetDB    string `env:"DATASET_DB"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	CookieName    string        `env:"COOKIE_NAME" envDefault:"rigaguess_session"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	ClientOrigin    string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	DisplayLocale   string `env:"DISPLAY_LOCALE" envDefault:"lv"`

	// RNGSeed makes listing and pair selection reproducible; 0 picks a random seed.
	RNGSeed int64 `env:"RNG_SEED" envDefault:"0"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
