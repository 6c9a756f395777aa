package progression

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigurationError.
	ErrInvalidConfig = errors.New("invalid progression config")

	// ErrTierNotFound is matched by every *TierNotFoundError.
	ErrTierNotFound = errors.New("tier not found")

	// ErrNegativeScore is returned when a negative score is resolved.
	ErrNegativeScore = errors.New("score must not be negative")
)

// ConfigurationError reports an invalid Config or an invalid imported table.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("progression: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// TierNotFoundError means a tier outside [1, TierCount] was requested.
// For stored player data it indicates an integrity problem, not user error.
type TierNotFoundError struct {
	Tier      int
	TierCount int
}

func (e *TierNotFoundError) Error() string {
	return fmt.Sprintf("progression: tier %d not found (table has tiers 1..%d)", e.Tier, e.TierCount)
}

func (e *TierNotFoundError) Is(target error) bool {
	return target == ErrTierNotFound
}
