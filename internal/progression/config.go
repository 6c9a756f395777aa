// Package progression implements the multi-tier ("prestige") leveling engine.
//
// A Table holds one strictly increasing sequence of score thresholds per tier.
// Resolve maps a (tier, score) pair onto a level inside that table, rolling the
// score over into later tiers when it exceeds a tier's ceiling, and Summarize
// derives the percentage and global-score view used by scoreboards.
//
// Everything in this package is pure: tables are immutable once built and every
// function is safe for concurrent use.
package progression

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinGrowthRate is the lowest growth rate softening may reduce a tier's rate to.
const MinGrowthRate = 1.02

// Config holds the tunable parameters of a progression curve.
type Config struct {
	// LevelsPerTier is the number of levels (thresholds) in every tier.
	LevelsPerTier int `yaml:"levels_per_tier" json:"levels_per_tier" validate:"gt=0"`

	// TierCount is the number of tiers in the table.
	TierCount int `yaml:"tier_count" json:"tier_count" validate:"gt=0"`

	// BaseScore is the ceiling of level 1 in every tier.
	BaseScore float64 `yaml:"base_score" json:"base_score" validate:"gt=0"`

	// BaseGrowthRate multiplies the running target after each level.
	BaseGrowthRate float64 `yaml:"base_growth_rate" json:"base_growth_rate" validate:"gt=1"`

	// SoftenEvery is the number of levels between growth softening checkpoints.
	SoftenEvery int `yaml:"soften_every" json:"soften_every" validate:"gt=0"`

	// SoftenAmount is subtracted from the growth rate at each checkpoint.
	SoftenAmount float64 `yaml:"soften_amount" json:"soften_amount" validate:"gte=0"`

	// PerTierDifficultyRate is added to BaseGrowthRate once per tier index.
	PerTierDifficultyRate float64 `yaml:"per_tier_difficulty_rate" json:"per_tier_difficulty_rate" validate:"gte=0"`
}

// DefaultConfig returns the reference curve: 10 tiers of 100 levels starting at
// 100 points with 12% growth, softened by 0.03 every 25 levels.
func DefaultConfig() Config {
	return Config{
		LevelsPerTier:         100,
		TierCount:             10,
		BaseScore:             100,
		BaseGrowthRate:        1.12,
		SoftenEvery:           25,
		SoftenAmount:          0.03,
		PerTierDifficultyRate: 0.0015,
	}
}

var validate = validator.New()

func init() {
	// Report YAML field names so errors point at the config file key.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks every parameter and returns a *ConfigurationError naming the
// first offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigurationError{Field: "config", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ConfigurationError{
		Field:  fe.Field(),
		Reason: describeRule(fe),
	}
}

// describeRule turns a validator rule into a readable sentence.
func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q rule, got %v", fe.Tag(), fe.Value())
	}
}
