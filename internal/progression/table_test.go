package progression

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doublingConfig produces three identical tiers: 10, 20, 40, 80, 160.
func doublingConfig() Config {
	return Config{
		LevelsPerTier:  5,
		TierCount:      3,
		BaseScore:      10,
		BaseGrowthRate: 2,
		SoftenEvery:    100,
	}
}

func mustBuild(t *testing.T, cfg Config) *Table {
	t.Helper()
	table, err := BuildTable(cfg)
	require.NoError(t, err)
	return table
}

func TestBuildTableDefaultCurve(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())
	require.Equal(t, 10, table.TierCount())

	tier1, err := table.Thresholds(1)
	require.NoError(t, err)
	require.Len(t, tier1, 100)
	assert.Equal(t, []int64{100, 112, 125, 140, 157, 176}, tier1[:6])
	assert.Equal(t, []int64{114191, 117617}, tier1[98:])

	ceilings := make([]int64, 0, table.TierCount())
	for tier := 1; tier <= table.TierCount(); tier++ {
		c, err := table.Ceiling(tier)
		require.NoError(t, err)
		ceilings = append(ceilings, c)
	}
	assert.Equal(t, []int64{
		117617, 135053, 155045, 177961, 204225,
		234320, 268799, 308293, 353522, 405310,
	}, ceilings)
	assert.Equal(t, int64(2360145), table.TotalPossibleScore())
}

func TestBuildTableIsDeterministic(t *testing.T) {
	t.Parallel()

	a := mustBuild(t, DefaultConfig())
	b := mustBuild(t, DefaultConfig())
	assert.Equal(t, a, b)
}

func TestBuildTableStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	configs := map[string]Config{
		"default":    DefaultConfig(),
		"doubling":   doublingConfig(),
		"steep":      {LevelsPerTier: 60, TierCount: 4, BaseScore: 5, BaseGrowthRate: 1.5, SoftenEvery: 10, SoftenAmount: 0.2, PerTierDifficultyRate: 0.1},
		"soft floor": {LevelsPerTier: 300, TierCount: 2, BaseScore: 200, BaseGrowthRate: 1.1, SoftenEvery: 5, SoftenAmount: 0.05},
		"long tiers": {LevelsPerTier: 250, TierCount: 20, BaseScore: 50, BaseGrowthRate: 1.08, SoftenEvery: 50, SoftenAmount: 0.01, PerTierDifficultyRate: 0.002},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			table := mustBuild(t, cfg)
			for tier := 1; tier <= table.TierCount(); tier++ {
				th, err := table.Thresholds(tier)
				require.NoError(t, err)
				require.Len(t, th, cfg.LevelsPerTier)
				for i := 1; i < len(th); i++ {
					require.Greater(t, th[i], th[i-1], "tier %d level %d", tier, i+1)
				}
			}
		})
	}
}

func TestBuildTableSofteningNeverDropsBelowFloor(t *testing.T) {
	t.Parallel()

	// Without the floor the rate would reach 1.0 after two checkpoints and
	// produce equal thresholds.
	cfg := Config{
		LevelsPerTier:  40,
		TierCount:      1,
		BaseScore:      1000,
		BaseGrowthRate: 1.05,
		SoftenEvery:    5,
		SoftenAmount:   0.03,
	}
	table := mustBuild(t, cfg)

	th, err := table.Thresholds(1)
	require.NoError(t, err)
	// After softening, each step grows by exactly MinGrowthRate.
	assert.InDelta(t, float64(th[38])*MinGrowthRate, float64(th[39]), 2.0)
}

func TestBuildTableRejectsTiedThresholds(t *testing.T) {
	t.Parallel()

	// A base score near 1 with slow growth floors to 1, 1, 1, ...
	cfg := Config{
		LevelsPerTier:  10,
		TierCount:      2,
		BaseScore:      1,
		BaseGrowthRate: 1.05,
		SoftenEvery:    5,
		SoftenAmount:   0.01,
	}
	_, err := BuildTable(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Prestige 1", cfgErr.Field)
	assert.Contains(t, cfgErr.Reason, "level 2")
}

func TestBuildTableRejectsZeroFirstThreshold(t *testing.T) {
	t.Parallel()

	cfg := doublingConfig()
	cfg.BaseScore = 0.5
	_, err := BuildTable(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuildTableRejectsCeilingBeyondInt64(t *testing.T) {
	t.Parallel()

	cfg := Config{
		LevelsPerTier:  400,
		TierCount:      1,
		BaseScore:      100,
		BaseGrowthRate: 1.12,
		SoftenEvery:    1000,
	}
	_, err := BuildTable(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "curve", cfgErr.Field)
	assert.Contains(t, cfgErr.Reason, "Prestige 1 level 346")
	assert.Contains(t, cfgErr.Reason, "exceeds int64")
	assert.Contains(t, cfgErr.Reason, "base_growth_rate=1.12")
	assert.NotContains(t, cfgErr.Reason, "strictly increasing")
}

func TestBuildTableRejectsTotalBeyondInt64(t *testing.T) {
	t.Parallel()

	// Each tier ends near 1.96e18, ten of them do not fit in an int64.
	cfg := Config{
		LevelsPerTier:  332,
		TierCount:      10,
		BaseScore:      100,
		BaseGrowthRate: 1.12,
		SoftenEvery:    1000,
	}
	_, err := BuildTable(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tiers", cfgErr.Field)
	assert.Equal(t, "total score exceeds int64", cfgErr.Reason)

	// Four such tiers still fit.
	cfg.TierCount = 4
	table := mustBuild(t, cfg)
	assert.Positive(t, table.TotalPossibleScore())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "zero levels", mutate: func(c *Config) { c.LevelsPerTier = 0 }, field: "levels_per_tier"},
		{name: "negative tiers", mutate: func(c *Config) { c.TierCount = -1 }, field: "tier_count"},
		{name: "zero base score", mutate: func(c *Config) { c.BaseScore = 0 }, field: "base_score"},
		{name: "flat growth", mutate: func(c *Config) { c.BaseGrowthRate = 1.0 }, field: "base_growth_rate"},
		{name: "zero soften interval", mutate: func(c *Config) { c.SoftenEvery = 0 }, field: "soften_every"},
		{name: "negative soften amount", mutate: func(c *Config) { c.SoftenAmount = -0.1 }, field: "soften_amount"},
		{name: "negative tier difficulty", mutate: func(c *Config) { c.PerTierDifficultyRate = -0.001 }, field: "per_tier_difficulty_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field)

			_, err = BuildTable(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestTableAccessors(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, doublingConfig())

	levels, err := table.Levels(2)
	require.NoError(t, err)
	assert.Equal(t, 5, levels)

	assert.True(t, table.HasTier(1))
	assert.True(t, table.HasTier(3))
	assert.False(t, table.HasTier(0))
	assert.False(t, table.HasTier(4))

	assert.Equal(t, int64(0), table.CompletedScore(1))
	assert.Equal(t, int64(160), table.CompletedScore(2))
	assert.Equal(t, int64(320), table.CompletedScore(3))
	assert.Equal(t, int64(480), table.TotalPossibleScore())

	_, err = table.Ceiling(4)
	var tierErr *TierNotFoundError
	require.ErrorAs(t, err, &tierErr)
	assert.Equal(t, 4, tierErr.Tier)
	assert.Equal(t, 3, tierErr.TierCount)
}

func TestThresholdsReturnsCopy(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, doublingConfig())

	th, err := table.Thresholds(1)
	require.NoError(t, err)
	th[0] = 999

	again, err := table.Thresholds(1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again[0])
}

func TestTableJSONRoundTrip(t *testing.T) {
	t.Parallel()

	table := mustBuild(t, DefaultConfig())

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"Prestige 1":[100,112,125,`))
	assert.Less(t, strings.Index(string(data), `"Prestige 2"`), strings.Index(string(data), `"Prestige 10"`))

	decoded, err := DecodeTable(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, table, decoded)
}

func TestDecodeTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantField string
	}{
		{name: "valid", input: `{"Prestige 2": [5, 6], "Prestige 1": [1.0, 3]}`},
		{name: "gap in tiers", input: `{"Prestige 1": [1, 2], "Prestige 3": [1, 2]}`, wantErr: ErrInvalidConfig},
		{name: "bad key", input: `{"Level 1": [1, 2]}`, wantErr: ErrInvalidConfig},
		{name: "fractional threshold", input: `{"Prestige 1": [1.5, 2]}`, wantErr: ErrInvalidConfig},
		{name: "not increasing", input: `{"Prestige 1": [3, 3]}`, wantErr: ErrInvalidConfig},
		{name: "empty tier", input: `{"Prestige 1": []}`, wantErr: ErrInvalidConfig},
		{name: "empty table", input: `{}`, wantErr: ErrInvalidConfig},
		{name: "threshold beyond int64", input: `{"Prestige 1": [1, 1e19]}`, wantErr: ErrInvalidConfig},
		{name: "negative threshold", input: `{"Prestige 1": [-5, 10]}`, wantErr: ErrInvalidConfig},
		{name: "total beyond int64", input: `{"Prestige 1": [5e18, 6e18], "Prestige 2": [5e18, 9e18]}`, wantErr: ErrInvalidConfig, wantField: "tiers"},
		{name: "malformed", input: `{"Prestige 1": [1, `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, err := DecodeTable(strings.NewReader(tt.input))
			switch {
			case tt.name == "malformed":
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrInvalidConfig))
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantField != "" {
					var cfgErr *ConfigurationError
					require.ErrorAs(t, err, &cfgErr)
					assert.Equal(t, tt.wantField, cfgErr.Field)
				}
			default:
				require.NoError(t, err)
				th, err := table.Thresholds(2)
				require.NoError(t, err)
				assert.Equal(t, []int64{5, 6}, th)
			}
		})
	}
}

func TestTierNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Prestige 7", TierName(7))

	n, err := ParseTierName(" Prestige 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"", "Prestige", "Prestige x", "Prestige 0", "Prestige -2", "prestige 1"} {
		_, err := ParseTierName(bad)
		assert.Error(t, err, bad)
	}
}
