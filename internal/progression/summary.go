package progression

import "math"

// Summary is the percentage and global-score view of a Resolution.
type Summary struct {
	// ProgressWithinLevel is the percentage of the current level completed.
	ProgressWithinLevel float64
	// GlobalScore is ScoreWithinTier plus the ceilings of all completed tiers.
	GlobalScore int64
	// TotalPossibleScore is the sum of every tier's ceiling.
	TotalPossibleScore int64
	// ProgressGlobal is GlobalScore as a percentage of TotalPossibleScore.
	ProgressGlobal float64
	// Degenerate is set when the level interval was empty and
	// ProgressWithinLevel was defined as 100.
	Degenerate bool
}

// Summarize computes level and global progress for res.
func Summarize(t *Table, res Resolution) Summary {
	var s Summary

	if res.UpperBound <= res.LowerBound {
		s.ProgressWithinLevel = 100
		s.Degenerate = true
	} else {
		span := float64(res.UpperBound - res.LowerBound)
		s.ProgressWithinLevel = percent(float64(res.ScoreWithinTier-res.LowerBound) / span)
	}

	s.GlobalScore = res.ScoreWithinTier + t.CompletedScore(res.Tier)
	s.TotalPossibleScore = t.TotalPossibleScore()
	if s.TotalPossibleScore > 0 {
		s.ProgressGlobal = percent(float64(s.GlobalScore) / float64(s.TotalPossibleScore))
	}

	return s
}

// percent converts a ratio to a percentage rounded to two decimals in [0, 100].
func percent(ratio float64) float64 {
	p := math.Round(ratio*100*100) / 100
	return math.Max(0, math.Min(100, p))
}
