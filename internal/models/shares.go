package models

import (
	"bytes"
	"encoding/json"
)

// ShareMode selects how an expense amount is divided among members.
type ShareMode int

const (
	// ShareEqualAll splits the amount equally across all current members.
	ShareEqualAll ShareMode = iota

	// ShareEqualSubset splits the amount equally across the named members.
	ShareEqualSubset

	// ShareManual uses the provided per-member amounts verbatim.
	ShareManual

	// ShareInvalid marks a spec decoded from an unsupported wire shape.
	// Resolution rejects it; it cannot be constructed directly.
	ShareInvalid
)

// ShareSpec describes how to divide an expense. The zero value splits
// equally across all members, matching an absent "shares" field on the wire.
type ShareSpec struct {
	Mode    ShareMode
	Names   []string
	Amounts map[string]float64
}

// EqualAll returns a spec that splits equally across all current members.
func EqualAll() ShareSpec {
	return ShareSpec{Mode: ShareEqualAll}
}

// Among returns a spec that splits equally across the given member names.
func Among(names ...string) ShareSpec {
	return ShareSpec{Mode: ShareEqualSubset, Names: names}
}

// Manual returns a spec with explicit per-member amounts.
func Manual(amounts map[string]float64) ShareSpec {
	return ShareSpec{Mode: ShareManual, Amounts: amounts}
}

// UnmarshalJSON decodes the polymorphic wire format for shares:
// null (equal split across all members), a list of names (equal split across
// those members), or a name-to-amount object (manual split). Any other valid
// JSON value yields a spec with ShareInvalid, which resolution rejects.
func (s *ShareSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ShareSpec{Mode: ShareEqualAll}
		return nil
	}

	switch data[0] {
	case '[':
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return err
		}
		*s = ShareSpec{Mode: ShareEqualSubset, Names: names}
	case '{':
		var amounts map[string]float64
		if err := json.Unmarshal(data, &amounts); err != nil {
			return err
		}
		*s = ShareSpec{Mode: ShareManual, Amounts: amounts}
	default:
		// Scalars (numbers, strings, booleans) are not a valid shape.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = ShareSpec{Mode: ShareInvalid}
	}
	return nil
}

// MarshalJSON encodes the spec back into its wire shape.
func (s ShareSpec) MarshalJSON() ([]byte, error) {
	switch s.Mode {
	case ShareEqualSubset:
		return json.Marshal(s.Names)
	case ShareManual:
		return json.Marshal(s.Amounts)
	default:
		return []byte("null"), nil
	}
}
