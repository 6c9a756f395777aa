package progression

import (
	"fmt"
	"math"
	"slices"
)

// Table is an immutable set of per-tier threshold sequences.
// Tier n (1-based) is stored at tiers[n-1]; thresholds[i] is the ceiling of level i+1.
type Table struct {
	tiers [][]int64
}

// BuildTable generates the threshold table for cfg.
// The same config always yields the same table.
func BuildTable(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiers := make([][]int64, cfg.TierCount)
	for k := range cfg.TierCount {
		rate := cfg.BaseGrowthRate + float64(k)*cfg.PerTierDifficultyRate
		target := cfg.BaseScore

		thresholds := make([]int64, 0, cfg.LevelsPerTier)
		for i := range cfg.LevelsPerTier {
			if target >= math.MaxInt64 {
				return nil, &ConfigurationError{
					Field: "curve",
					Reason: fmt.Sprintf("%s level %d ceiling %.4g exceeds int64 (base_score=%g, base_growth_rate=%g, per_tier_difficulty_rate=%g, levels_per_tier=%d)",
						TierName(k+1), i+1, target, cfg.BaseScore, cfg.BaseGrowthRate, cfg.PerTierDifficultyRate, cfg.LevelsPerTier),
				}
			}
			thresholds = append(thresholds, int64(math.Floor(target)))

			if (i+1)%cfg.SoftenEvery == 0 && rate > MinGrowthRate {
				rate = math.Max(rate-cfg.SoftenAmount, MinGrowthRate)
			}
			target *= rate
		}
		tiers[k] = thresholds
	}

	return newTable(tiers)
}

// newTable takes ownership of tiers after checking the table invariants.
func newTable(tiers [][]int64) (*Table, error) {
	if len(tiers) == 0 {
		return nil, &ConfigurationError{Field: "tiers", Reason: "table has no tiers"}
	}
	var total int64
	for k, thresholds := range tiers {
		if len(thresholds) == 0 {
			return nil, &ConfigurationError{
				Field:  TierName(k + 1),
				Reason: "tier has no levels",
			}
		}
		if thresholds[0] <= 0 {
			return nil, &ConfigurationError{
				Field:  TierName(k + 1),
				Reason: fmt.Sprintf("level 1 ceiling must be positive, got %d", thresholds[0]),
			}
		}
		for i := 1; i < len(thresholds); i++ {
			if thresholds[i] <= thresholds[i-1] {
				return nil, &ConfigurationError{
					Field: TierName(k + 1),
					Reason: fmt.Sprintf("thresholds not strictly increasing at level %d (%d after %d)",
						i+1, thresholds[i], thresholds[i-1]),
				}
			}
		}
		ceiling := thresholds[len(thresholds)-1]
		if ceiling > math.MaxInt64-total {
			return nil, &ConfigurationError{Field: "tiers", Reason: "total score exceeds int64"}
		}
		total += ceiling
	}
	return &Table{tiers: tiers}, nil
}

// TierCount returns the number of tiers.
func (t *Table) TierCount() int {
	return len(t.tiers)
}

// HasTier reports whether tier is inside [1, TierCount].
func (t *Table) HasTier(tier int) bool {
	return tier >= 1 && tier <= len(t.tiers)
}

// Levels returns the number of levels in tier.
func (t *Table) Levels(tier int) (int, error) {
	th, err := t.tier(tier)
	if err != nil {
		return 0, err
	}
	return len(th), nil
}

// Thresholds returns a copy of tier's threshold sequence.
func (t *Table) Thresholds(tier int) ([]int64, error) {
	th, err := t.tier(tier)
	if err != nil {
		return nil, err
	}
	return slices.Clone(th), nil
}

// Ceiling returns the final threshold of tier, the most a player can hold in it.
func (t *Table) Ceiling(tier int) (int64, error) {
	th, err := t.tier(tier)
	if err != nil {
		return 0, err
	}
	return th[len(th)-1], nil
}

// CompletedScore returns the sum of the ceilings of every tier below tier.
func (t *Table) CompletedScore(tier int) int64 {
	var sum int64
	for k := 0; k < tier-1 && k < len(t.tiers); k++ {
		sum += t.tiers[k][len(t.tiers[k])-1]
	}
	return sum
}

// TotalPossibleScore returns the sum of every tier's ceiling.
func (t *Table) TotalPossibleScore() int64 {
	return t.CompletedScore(len(t.tiers) + 1)
}

func (t *Table) tier(tier int) ([]int64, error) {
	if !t.HasTier(tier) {
		return nil, &TierNotFoundError{Tier: tier, TierCount: len(t.tiers)}
	}
	return t.tiers[tier-1], nil
}
