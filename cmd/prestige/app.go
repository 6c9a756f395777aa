package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/prestige/internal/config"
	"github.com/vovakirdan/prestige/internal/logging"
	"github.com/vovakirdan/prestige/internal/progression"
	"github.com/vovakirdan/prestige/internal/registry"
	"github.com/vovakirdan/prestige/internal/storage"
	"github.com/vovakirdan/prestige/internal/tracker"
)

// app holds what every command needs: settings merged with flags, the
// logger and the game registry.
type app struct {
	settings config.Settings
	logger   *log.Logger
	games    *registry.Registry
}

// loadApp resolves settings, builds the logger and loads the catalog.
// It exits the process on failure.
func loadApp() *app {
	settings, err := config.LoadSettings(flagEnvFile)
	if err != nil {
		fail("Error loading settings: %v", err)
	}
	if flagDBPath != "" {
		settings.DBPath = flagDBPath
	}
	if flagConfig != "" {
		settings.ConfigPath = flagConfig
	}
	if flagLogLevel != "" {
		settings.LogLevel = flagLogLevel
	}

	logger, err := logging.New(settings.LogLevel, "prestige")
	if err != nil {
		fail("Error: %v", err)
	}

	catalog, err := config.LoadCatalog(settings.ConfigPath)
	if err != nil {
		if errors.Is(err, progression.ErrInvalidConfig) {
			fail("Error: games catalog has an invalid curve: %v", err)
		}
		fail("Error loading games catalog: %v", err)
	}

	games, err := registry.FromCatalog(catalog)
	if err != nil {
		fail("Error: %v", err)
	}

	logger.Debug("catalog loaded", "games", len(catalog.Games), "db", settings.DBPath)
	return &app{settings: settings, logger: logger, games: games}
}

// lookupGame returns the registered game or exits with a hint.
func (a *app) lookupGame(gameID string) registry.Game {
	game, err := a.games.Lookup(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'prestige list' to see available games.")
		os.Exit(1)
	}
	return game
}

// openTracker opens the database and builds a tracker over it.
// The caller must close the returned store.
func (a *app) openTracker() (*tracker.Tracker, *storage.Store) {
	store, err := storage.Open(a.settings.DBPath)
	if err != nil {
		fail("Error opening progress database: %v", err)
	}
	return tracker.New(a.games, store, a.logger), store
}

// fail prints an error message to stderr and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// describeError turns core errors into messages for the terminal.
func describeError(err error) string {
	var tnf *progression.TierNotFoundError
	switch {
	case errors.As(err, &tnf):
		return fmt.Sprintf("tier %d does not exist (the game has %d tiers)", tnf.Tier, tnf.TierCount)
	case errors.Is(err, progression.ErrNegativeScore):
		return "score must not be negative"
	case errors.Is(err, tracker.ErrNegativeDelta):
		return "points must not be negative"
	case errors.Is(err, storage.ErrPlayerNotFound):
		return "player has no recorded progress"
	default:
		return err.Error()
	}
}
