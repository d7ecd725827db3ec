package models

import (
	"encoding/json"
	"fmt"
)

// SplitType identifies how an expense's total is allocated across members.
type SplitType int

const (
	// SplitEqual divides the total evenly among all participants.
	SplitEqual SplitType = iota

	// SplitPercentage divides the total by per-member percentages summing to 100.
	SplitPercentage

	// SplitFixed uses per-member fixed amounts summing to the total.
	SplitFixed
)

// String returns the storage/wire form of the split type.
func (t SplitType) String() string {
	switch t {
	case SplitEqual:
		return "equal"
	case SplitPercentage:
		return "percentage"
	case SplitFixed:
		return "fixed"
	default:
		return fmt.Sprintf("SplitType(%d)", int(t))
	}
}

// ParseSplitType converts a string form back into a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	switch s {
	case "equal":
		return SplitEqual, nil
	case "percentage":
		return SplitPercentage, nil
	case "fixed":
		return SplitFixed, nil
	default:
		return 0, fmt.Errorf("unknown split type: %q", s)
	}
}

// MarshalJSON encodes the split type as its string form.
func (t SplitType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the string form of a split type.
func (t *SplitType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSplitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
