// Package config provides YAML-based loading of the game catalog (one
// progression curve per game) and environment-based process settings.
package config

import (
	"fmt"

	"github.com/vovakirdan/prestige/internal/progression"
)

// Catalog lists every game that tracks prestige progression.
type Catalog struct {
	Games []GameConfig `yaml:"games"`
}

// GameConfig describes one game and its progression curve.
type GameConfig struct {
	ID         string             `yaml:"id"`
	Title      string             `yaml:"title"`
	Difficulty DifficultyPreset   `yaml:"difficulty"`
	Curve      progression.Config `yaml:"curve"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Preset growth adjustments, added to the curve's rates.
const (
	easyGrowthDelta = -0.02
	hardGrowthDelta = 0.03
	hardTierDelta   = 0.001
)

// ApplyPreset returns curve adjusted for preset. An empty preset means normal.
func ApplyPreset(curve progression.Config, preset DifficultyPreset) (progression.Config, error) {
	switch preset {
	case "", DifficultyNormal:
	case DifficultyEasy:
		curve.BaseGrowthRate += easyGrowthDelta
	case DifficultyHard:
		curve.BaseGrowthRate += hardGrowthDelta
		curve.PerTierDifficultyRate += hardTierDelta
	default:
		return curve, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", preset)
	}
	return curve, nil
}

// Validate checks game ids and that every curve produces a valid table.
func (c Catalog) Validate() error {
	if len(c.Games) == 0 {
		return fmt.Errorf("config: catalog has no games")
	}

	seen := make(map[string]bool, len(c.Games))
	for i, g := range c.Games {
		if g.ID == "" {
			return fmt.Errorf("config: game #%d has no id", i+1)
		}
		if seen[g.ID] {
			return fmt.Errorf("config: duplicate game id %q", g.ID)
		}
		seen[g.ID] = true

		curve, err := ApplyPreset(g.Curve, g.Difficulty)
		if err != nil {
			return fmt.Errorf("config: game %q: %w", g.ID, err)
		}
		if _, err := progression.BuildTable(curve); err != nil {
			return fmt.Errorf("config: game %q: %w", g.ID, err)
		}
	}
	return nil
}

// EffectiveCurve returns the game's curve with its difficulty preset applied.
func (g GameConfig) EffectiveCurve() (progression.Config, error) {
	return ApplyPreset(g.Curve, g.Difficulty)
}

// DisplayTitle returns Title, falling back to ID.
func (g GameConfig) DisplayTitle() string {
	if g.Title == "" {
		return g.ID
	}
	return g.Title
}
