package progression

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// MarshalJSON writes the table as an object keyed by tier display name,
// tiers in ascending order: {"Prestige 1": [100, 112, ...], ...}.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for k, thresholds := range t.tiers {
		if k > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(TierName(k + 1))
		if err != nil {
			return nil, err
		}
		values, err := json.Marshal(thresholds)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeTable reads a table in the MarshalJSON format.
// Tiers must be contiguous from "Prestige 1" and every value a whole number.
func DecodeTable(r io.Reader) (*Table, error) {
	var raw map[string][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("progression: cannot decode table: %w", err)
	}

	tiers := make([][]int64, len(raw))
	for name, values := range raw {
		tier, err := ParseTierName(name)
		if err != nil {
			return nil, &ConfigurationError{Field: "tiers", Reason: err.Error()}
		}
		if tier > len(raw) {
			return nil, &ConfigurationError{
				Field:  name,
				Reason: fmt.Sprintf("tiers must be numbered 1..%d without gaps", len(raw)),
			}
		}

		thresholds := make([]int64, len(values))
		for i, v := range values {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, &ConfigurationError{
					Field:  name,
					Reason: fmt.Sprintf("level %d threshold %v is not a whole number", i+1, v),
				}
			}
			if v < 0 || v >= math.MaxInt64 {
				return nil, &ConfigurationError{
					Field:  name,
					Reason: fmt.Sprintf("level %d threshold %v is outside the int64 range", i+1, v),
				}
			}
			thresholds[i] = int64(v)
		}
		tiers[tier-1] = thresholds
	}

	return newTable(tiers)
}
