// Package config loads application configuration from environment
// variables, with an optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Sim     SimConfig
	Journal JournalConfig
	Log     LogConfig
}

// SimConfig holds the simulation parameters. Threshold and amount are fixed
// at model construction; changing them requires a new run.
type SimConfig struct {
	Steps            int   `envconfig:"SIM_STEPS" default:"5"`
	RestockThreshold int   `envconfig:"RESTOCK_THRESHOLD" default:"1"`
	RestockAmount    int   `envconfig:"RESTOCK_AMOUNT" default:"3"`
	Seed             int64 `envconfig:"SIM_SEED" default:"0"` // 0 = time-based seed
}

// JournalConfig holds the optional durable event journal settings.
type JournalConfig struct {
	Enabled bool   `envconfig:"JOURNAL_ENABLED" default:"false"`
	Driver  string `envconfig:"JOURNAL_DRIVER" default:"sqlite"` // sqlite, postgres, pgx, or sqlx
	Path    string `envconfig:"JOURNAL_PATH" default:"./data/journal.db"`
	DSN     string `envconfig:"JOURNAL_DSN" default:""`
	Table   string `envconfig:"JOURNAL_TABLE" default:"simulation_events"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	OTelBridge bool   `envconfig:"LOG_OTEL_BRIDGE" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
