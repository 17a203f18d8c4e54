// Package config loads process settings from the environment and combat
// tuning from YAML.
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Settings are the process-level options read from the environment.
type Settings struct {
	// RedisEndpoint selects Redis storage; empty keeps combatants in memory.
	RedisEndpoint string `env:"REDIS_ENDPOINT"`
	TuningFile    string `env:"COMBAT_TUNING_FILE"`
	Seed          int64  `env:"COMBAT_SEED" envDefault:"1"`
	LogLevel      string `env:"COMBAT_LOG_LEVEL" envDefault:"info"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// LoadSettings parses Settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings
func (s *Settings) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("COMBAT_LOG_LEVEL", strings.ToLower(s.LogLevel), logLevels, vb)
	return vb.Build()
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (s *Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
