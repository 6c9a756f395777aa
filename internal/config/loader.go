package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the catalog file name looked up in the config directories.
const CatalogFile = "games.yaml"

// LoadCatalog loads the game catalog.
// Search order: customPath -> ~/.prestige/games.yaml -> ./configs/games.yaml -> embedded default
//
// A custom path must exist and parse. The other locations are skipped when
// missing or unreadable.
func LoadCatalog(customPath string) (Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Catalog{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cat, err := parseCatalog(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cat, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(CatalogFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cat, err := parseCatalog(data); err == nil {
				return cat, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", CatalogFile)); err == nil {
		if cat, err := parseCatalog(data); err == nil {
			return cat, nil
		}
	}

	cat, err := parseCatalog(defaultCatalogYAML)
	if err != nil {
		return DefaultCatalog(), nil // Fallback to hardcoded if embed fails
	}
	return cat, nil
}

// parseCatalog decodes and validates catalog YAML. Unknown keys are rejected
// so a misspelled curve parameter is not silently zeroed.
func parseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return Catalog{}, err
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".prestige", filename)
}
