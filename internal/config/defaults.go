package config

import (
	_ "embed"

	"github.com/vovakirdan/prestige/internal/progression"
)

//go:embed defaults/games.yaml
var defaultCatalogYAML []byte

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Games: []GameConfig{
			{
				ID:         "tetris",
				Title:      "Tetris",
				Difficulty: DifficultyNormal,
				Curve:      progression.DefaultConfig(),
			},
			{
				ID:         "random_number",
				Title:      "Random Number",
				Difficulty: DifficultyEasy,
				Curve: progression.Config{
					LevelsPerTier:         50,
					TierCount:             5,
					BaseScore:             20,
					BaseGrowthRate:        1.1,
					SoftenEvery:           10,
					SoftenAmount:          0.02,
					PerTierDifficultyRate: 0.001,
				},
			},
		},
	}
}

// DefaultCatalogYAML returns the embedded default catalog file.
func DefaultCatalogYAML() []byte {
	return defaultCatalogYAML
}
