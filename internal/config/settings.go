package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadSettings.
const (
	EnvDBPath     = "PRESTIGE_DB"
	EnvConfigPath = "PRESTIGE_CONFIG"
	EnvLogLevel   = "PRESTIGE_LOG_LEVEL"
)

// Settings holds process-wide settings. Command-line flags override them.
type Settings struct {
	DBPath     string
	ConfigPath string
	LogLevel   string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DBPath:   "~/.prestige/progress.db",
		LogLevel: "info",
	}
}

// LoadSettings reads settings from the environment after loading envFile
// (usually ".env") if it exists. Variables already set in the environment win
// over the file.
func LoadSettings(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("config: failed to load %s: %w", envFile, err)
		}
	}

	s := DefaultSettings()
	if v, ok := os.LookupEnv(EnvDBPath); ok && v != "" {
		s.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvConfigPath); ok {
		s.ConfigPath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
	}
	return s, nil
}
