package progression

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReferenceScenarios(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	tier1Ceiling, err := table.Ceiling(1)
	require.NoError(t, err)
	lastCeiling, err := table.Ceiling(10)
	require.NoError(t, err)
	tier10Thresholds, err := table.Thresholds(10)
	require.NoError(t, err)

	tests := []struct {
		name  string
		tier  int
		score int64
		want  Resolution
		level float64
	}{
		{
			name:  "fresh player",
			tier:  1,
			score: 0,
			want:  Resolution{Level: 1, Tier: 1, LowerBound: 0, UpperBound: 100, ScoreWithinTier: 0},
			level: 0,
		},
		{
			name:  "one point short of level 2",
			tier:  1,
			score: 99,
			want:  Resolution{Level: 1, Tier: 1, LowerBound: 0, UpperBound: 100, ScoreWithinTier: 99},
			level: 99,
		},
		{
			name:  "exactly on level 1 ceiling",
			tier:  1,
			score: 100,
			want:  Resolution{Level: 2, Tier: 1, LowerBound: 100, UpperBound: 112, ScoreWithinTier: 100},
			level: 0,
		},
		{
			name:  "just into level 2",
			tier:  1,
			score: 101,
			want:  Resolution{Level: 2, Tier: 1, LowerBound: 100, UpperBound: 112, ScoreWithinTier: 101},
			level: 8.33,
		},
		{
			name:  "tier ceiling rolls into next tier",
			tier:  1,
			score: tier1Ceiling,
			want:  Resolution{Level: 1, Tier: 2, LowerBound: 0, UpperBound: 100, ScoreWithinTier: 0},
			level: 0,
		},
		{
			name:  "beyond final tier clamps",
			tier:  10,
			score: lastCeiling + 5000,
			want: Resolution{
				Level:           100,
				Tier:            10,
				LowerBound:      tier10Thresholds[98],
				UpperBound:      lastCeiling,
				ScoreWithinTier: lastCeiling,
			},
			level: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, err := Evaluate(table, tt.tier, tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Resolution)
			assert.InDelta(t, tt.level, status.ProgressWithinLevel, 1e-9)
			assert.False(t, status.Degenerate)
		})
	}
}

func TestEvaluateClampedFinalTierIsComplete(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	lastCeiling, err := table.Ceiling(10)
	require.NoError(t, err)

	status, err := Evaluate(table, 10, lastCeiling*3)
	require.NoError(t, err)
	assert.True(t, status.Clamped(table))
	assert.Equal(t, 100.0, status.ProgressWithinLevel)
	assert.Equal(t, 100.0, status.ProgressGlobal)
	assert.Equal(t, table.TotalPossibleScore(), status.GlobalScore)
}

func TestResolveRollsOverSeveralTiers(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, doublingConfig())

	tests := []struct {
		name  string
		tier  int
		score int64
		want  Resolution
	}{
		{name: "two tiers at once", tier: 1, score: 160 + 160 + 15, want: Resolution{Level: 2, Tier: 3, LowerBound: 10, UpperBound: 20, ScoreWithinTier: 15}},
		{name: "start mid table", tier: 2, score: 165, want: Resolution{Level: 1, Tier: 3, LowerBound: 0, UpperBound: 10, ScoreWithinTier: 5}},
		{name: "whole table from tier 1", tier: 1, score: 480, want: Resolution{Level: 5, Tier: 3, LowerBound: 80, UpperBound: 160, ScoreWithinTier: 160}},
		{name: "far beyond table", tier: 1, score: 1 << 40, want: Resolution{Level: 5, Tier: 3, LowerBound: 80, UpperBound: 160, ScoreWithinTier: 160}},
		{name: "last tier exactly on ceiling", tier: 3, score: 160, want: Resolution{Level: 5, Tier: 3, LowerBound: 80, UpperBound: 160, ScoreWithinTier: 160}},
		{name: "last level of tier", tier: 1, score: 159, want: Resolution{Level: 5, Tier: 1, LowerBound: 80, UpperBound: 160, ScoreWithinTier: 159}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(table, tt.tier, tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, doublingConfig())

	for _, tier := range []int{0, -1, 4, 100} {
		_, err := Resolve(table, tier, 10)
		require.ErrorIs(t, err, ErrTierNotFound, "tier %d", tier)

		var tierErr *TierNotFoundError
		require.ErrorAs(t, err, &tierErr)
		assert.Equal(t, tier, tierErr.Tier)
	}

	_, err := Resolve(table, 1, -1)
	assert.ErrorIs(t, err, ErrNegativeScore)

	_, err = Evaluate(table, 9, 0)
	assert.ErrorIs(t, err, ErrTierNotFound)
}

func TestResolveSingleLevelTiers(t *testing.T) {
	t.Parallel()

	table, err := newTable([][]int64{{50}, {70}})
	require.NoError(t, err)

	got, err := Resolve(table, 1, 60)
	require.NoError(t, err)
	assert.Equal(t, Resolution{Level: 1, Tier: 2, LowerBound: 0, UpperBound: 70, ScoreWithinTier: 10}, got)

	got, err = Resolve(table, 2, 500)
	require.NoError(t, err)
	assert.Equal(t, Resolution{Level: 1, Tier: 2, LowerBound: 0, UpperBound: 70, ScoreWithinTier: 70}, got)
	assert.Equal(t, 100.0, Summarize(table, got).ProgressWithinLevel)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, doublingConfig())

	tests := []struct {
		name       string
		res        Resolution
		level      float64
		global     int64
		globalPct  float64
		degenerate bool
	}{
		{
			name:      "first tier",
			res:       Resolution{Level: 3, Tier: 1, LowerBound: 20, UpperBound: 40, ScoreWithinTier: 25},
			level:     25,
			global:    25,
			globalPct: 5.21,
		},
		{
			name:      "completed tiers are added",
			res:       Resolution{Level: 4, Tier: 3, LowerBound: 40, UpperBound: 80, ScoreWithinTier: 70},
			level:     75,
			global:    390,
			globalPct: 81.25,
		},
		{
			name:       "degenerate interval",
			res:        Resolution{Level: 2, Tier: 2, LowerBound: 20, UpperBound: 20, ScoreWithinTier: 20},
			level:      100,
			global:     180,
			globalPct:  37.5,
			degenerate: true,
		},
		{
			name:      "out of range score is clamped",
			res:       Resolution{Level: 1, Tier: 1, LowerBound: 0, UpperBound: 10, ScoreWithinTier: 11},
			level:     100,
			global:    11,
			globalPct: 2.29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := Summarize(table, tt.res)
			assert.InDelta(t, tt.level, s.ProgressWithinLevel, 1e-9)
			assert.Equal(t, tt.global, s.GlobalScore)
			assert.Equal(t, int64(480), s.TotalPossibleScore)
			assert.InDelta(t, tt.globalPct, s.ProgressGlobal, 1e-9)
			assert.Equal(t, tt.degenerate, s.Degenerate)
		})
	}
}

func TestResolveProperties(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	total := table.TotalPossibleScore()
	rng := rand.New(rand.NewPCG(42, 7))

	for range 2000 {
		tier := 1 + rng.IntN(table.TierCount())
		score := rng.Int64N(total + total/10)

		first, err := Evaluate(table, tier, score)
		require.NoError(t, err)

		// Identical inputs, identical output.
		second, err := Evaluate(table, tier, score)
		require.NoError(t, err)
		require.Equal(t, first, second)

		require.GreaterOrEqual(t, first.Tier, tier)
		require.True(t, table.HasTier(first.Tier))
		require.GreaterOrEqual(t, first.ScoreWithinTier, first.LowerBound)
		if first.Clamped(table) {
			require.Equal(t, first.UpperBound, first.ScoreWithinTier)
		} else {
			require.Less(t, first.ScoreWithinTier, first.UpperBound)
		}

		require.GreaterOrEqual(t, first.ProgressWithinLevel, 0.0)
		require.LessOrEqual(t, first.ProgressWithinLevel, 100.0)
		require.GreaterOrEqual(t, first.ProgressGlobal, 0.0)
		require.LessOrEqual(t, first.ProgressGlobal, 100.0)

		// Global score is the input plus everything below the starting tier,
		// up to the clamp.
		want := min(score+table.CompletedScore(tier), total)
		require.Equal(t, want, first.GlobalScore)
	}
}

func TestResolveMonotonicInScore(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	ceiling, err := table.Ceiling(1)
	require.NoError(t, err)

	prev, err := Evaluate(table, 1, 0)
	require.NoError(t, err)

	for score := int64(1); score < ceiling; score += 7 {
		cur, err := Evaluate(table, 1, score)
		require.NoError(t, err)
		require.Equal(t, 1, cur.Tier)
		require.GreaterOrEqual(t, cur.Level, prev.Level, "score %d", score)
		require.Greater(t, cur.GlobalScore, prev.GlobalScore, "score %d", score)
		prev = cur
	}

	// Across tiers, global score keeps growing.
	var last int64 = -1
	for score := int64(0); score <= table.TotalPossibleScore(); score += 997 {
		cur, err := Evaluate(table, 1, score)
		require.NoError(t, err)
		require.Greater(t, cur.GlobalScore, last)
		last = cur.GlobalScore
	}
}

func TestLowerBoundHasZeroProgress(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())

	for tier := 1; tier <= table.TierCount(); tier++ {
		thresholds, err := table.Thresholds(tier)
		require.NoError(t, err)

		// Level n > 1 starts at thresholds[n-2].
		for level := 2; level <= len(thresholds); level++ {
			status, err := Evaluate(table, tier, thresholds[level-2])
			require.NoError(t, err)
			require.Equal(t, level, status.Level)
			require.Equal(t, tier, status.Tier)
			require.Equal(t, 0.0, status.ProgressWithinLevel)
		}
	}
}

func TestTableIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	want, err := Evaluate(table, 3, 54321)
	require.NoError(t, err)

	done := make(chan Status, 16)
	for range cap(done) {
		go func() {
			s, _ := Evaluate(table, 3, 54321)
			done <- s
		}()
	}
	for range cap(done) {
		assert.Equal(t, want, <-done)
	}
}
