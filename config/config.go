package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration read from the environment.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8000"`

	UseRedis      bool   `env:"USE_REDIS" envDefault:"true"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Portal telemetry is off unless explicitly enabled.
	UseAPI       bool   `env:"USE_API" envDefault:"false"`
	PortalDomain string `env:"PORTAL_DOMAIN" envDefault:"http://localhost/wordpress"`
	GameID       int    `env:"GAME_ID" envDefault:"1213"`

	TickHz      int      `env:"TICK_HZ" envDefault:"60"`
	DecksPath   string   `env:"DECKS_PATH"`
	BoardPath   string   `env:"BOARD_PATH"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`
}

// Load reads Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickHz <= 0 {
		return Config{}, fmt.Errorf("TICK_HZ must be positive, got %d", cfg.TickHz)
	}
	return cfg, nil
}
