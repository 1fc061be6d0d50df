package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	// DBPath overrides the save file location. Empty means the default.
	DBPath string `env:"MATHQUEST_DB"`

	// Seed fixes the random source. Zero draws a fresh seed.
	Seed uint64 `env:"MATHQUEST_SEED" envDefault:"0"`

	// FeedbackDelay is how long a resolved turn stays on screen.
	FeedbackDelay time.Duration `env:"MATHQUEST_FEEDBACK_DELAY" envDefault:"1800ms"`

	// SkipIntro skips the opening cutscene on a new game.
	SkipIntro bool `env:"MATHQUEST_SKIP_INTRO" envDefault:"false"`

	// TimerSeconds is the countdown per problem.
	TimerSeconds int `env:"MATHQUEST_TIMER_SECONDS" envDefault:"25"`

	// LogFile receives warnings while the TUI owns the terminal.
	LogFile string `env:"MATHQUEST_LOG"`

	// CatalogFile replaces the built-in stage catalog.
	CatalogFile string `env:"MATHQUEST_CATALOG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file from the working directory and then
// parses Config from the environment. Variables already set win over the
// file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	if c.TimerSeconds <= 0 {
		return fmt.Errorf("MATHQUEST_TIMER_SECONDS must be positive, got %d", c.TimerSeconds)
	}
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("MATHQUEST_FEEDBACK_DELAY must not be negative, got %s", c.FeedbackDelay)
	}
	return nil
}
