// Package registry holds the catalog of games that award prestige progression.
// The CLI fills a Registry from the loaded config catalog, and the tracker and
// UI look games up by ID without knowing where the catalog came from.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/prestige/internal/config"
	"github.com/vovakirdan/prestige/internal/progression"
)

// ErrUnknownGame is returned by Lookup for IDs that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a registered game and its progression curve.
type Game struct {
	// ID is a unique identifier (e.g., "tetris"), used in CLI commands and storage.
	ID string

	// Title is a human-readable name for display (e.g., "Tetris").
	Title string

	// Curve generates the game's threshold table.
	Curve progression.Config
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Registry maps game IDs to games. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	games map[string]Game
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{games: make(map[string]Game)}
}

// FromCatalog creates a registry holding every game of cat, with difficulty
// presets applied to their curves.
func FromCatalog(cat config.Catalog) (*Registry, error) {
	r := New()
	for _, gc := range cat.Games {
		curve, err := gc.EffectiveCurve()
		if err != nil {
			return nil, fmt.Errorf("registry: game %q: %w", gc.ID, err)
		}
		if err := r.Register(Game{ID: gc.ID, Title: gc.DisplayTitle(), Curve: curve}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a game. It fails if the ID is empty or already registered.
func (r *Registry) Register(g Game) error {
	if g.ID == "" {
		return fmt.Errorf("registry: game has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[g.ID]; exists {
		return fmt.Errorf("registry: game %q already registered", g.ID)
	}
	if g.Title == "" {
		g.Title = g.ID
	}
	r.games[g.ID] = g
	return nil
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.games))
	for id, g := range r.games {
		result = append(result, GameInfo{
			ID:    id,
			Title: g.Title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the game with the given ID.
// Returns an error if the game ID is not registered.
func (r *Registry) Lookup(id string) (Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return Game{}, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return g, nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.games[id]
	return ok
}
