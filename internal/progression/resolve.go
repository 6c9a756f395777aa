package progression

import "sort"

// Resolution locates a score inside a table.
type Resolution struct {
	// Level is the 1-based level inside Tier.
	Level int
	// Tier is the resolved tier; it differs from the input tier after a roll-over.
	Tier int
	// LowerBound and UpperBound delimit the level: [LowerBound, UpperBound).
	// The interval is closed only for the clamped final level of the last tier.
	LowerBound int64
	UpperBound int64
	// ScoreWithinTier is the score left after subtracting completed tiers.
	ScoreWithinTier int64
}

// Clamped reports whether the resolution sits on the final tier's ceiling.
func (r Resolution) Clamped(t *Table) bool {
	if r.Tier != t.TierCount() {
		return false
	}
	ceiling, err := t.Ceiling(r.Tier)
	return err == nil && r.ScoreWithinTier >= ceiling
}

// Resolve finds the level for score starting from tier.
//
// A score at or above a tier's ceiling moves on to the next tier with the
// ceiling subtracted. On the last tier the score is clamped to the ceiling.
func Resolve(t *Table, tier int, score int64) (Resolution, error) {
	if score < 0 {
		return Resolution{}, ErrNegativeScore
	}

	thresholds, err := t.tier(tier)
	if err != nil {
		return Resolution{}, err
	}

	for {
		ceiling := thresholds[len(thresholds)-1]
		if score < ceiling {
			break
		}
		if tier == t.TierCount() {
			score = ceiling
			break
		}
		score -= ceiling
		tier++
		thresholds = t.tiers[tier-1]
	}

	res := Resolution{Tier: tier, ScoreWithinTier: score}

	// Smallest i with thresholds[i] > score, so thresholds[i-1] <= score < thresholds[i].
	i := sort.Search(len(thresholds), func(i int) bool { return thresholds[i] > score })
	switch {
	case i == 0:
		res.Level = 1
		res.LowerBound = 0
		res.UpperBound = thresholds[0]
	case i < len(thresholds):
		res.Level = i + 1
		res.LowerBound = thresholds[i-1]
		res.UpperBound = thresholds[i]
	default:
		// Only reachable through the final-tier clamp.
		n := len(thresholds)
		res.Level = n
		res.UpperBound = thresholds[n-1]
		if n > 1 {
			res.LowerBound = thresholds[n-2]
		}
	}

	return res, nil
}
