// internal/config/config.go
//
// Process configuration, read once at startup from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over it.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds every tunable of the service.
type Config struct {
	Port     int    `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Storage string `env:"WORDGUESS_STORAGE" envDefault:"sqlite"`
	DBPath  string `env:"WORDGUESS_DB"      envDefault:"./data/wordguess.db"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`

	ChallengeSecret string        `env:"CHALLENGE_SECRET" envDefault:"local_dev_secret"`
	ChallengeTTL    time.Duration `env:"CHALLENGE_TTL"    envDefault:"168h"`
	DailySalt       string        `env:"DAILY_SALT"       envDefault:"local_dev_salt"`

	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("WORDGUESS_DB is empty"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("WORDGUESS_STORAGE %q: want %s or %s", c.Storage, StorageSQLite, StorageMemory))
	}
	if c.ChallengeSecret == "" {
		errs = append(errs, errors.New("CHALLENGE_SECRET is empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
