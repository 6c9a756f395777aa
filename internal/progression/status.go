package progression

import (
	"fmt"
	"strconv"
	"strings"
)

// tierNamePrefix is the display prefix used for tiers in files and on screen.
const tierNamePrefix = "Prestige "

// Status bundles a Resolution with its Summary.
type Status struct {
	Resolution
	Summary
}

// Evaluate resolves score from tier and summarizes the result.
func Evaluate(t *Table, tier int, score int64) (Status, error) {
	res, err := Resolve(t, tier, score)
	if err != nil {
		return Status{}, err
	}
	return Status{Resolution: res, Summary: Summarize(t, res)}, nil
}

// TierName returns the display name of tier, e.g. "Prestige 3".
func TierName(tier int) string {
	return tierNamePrefix + strconv.Itoa(tier)
}

// ParseTierName parses a display name produced by TierName.
func ParseTierName(name string) (int, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(name), tierNamePrefix)
	if !ok {
		return 0, fmt.Errorf("progression: tier name %q must start with %q", name, tierNamePrefix)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("progression: tier name %q has no positive tier number", name)
	}
	return n, nil
}
