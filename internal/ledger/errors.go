package ledger

import (
	"errors"
	"fmt"
)

// ErrEmptyMembers is returned when an allocation is attempted over an empty
// member set.
var ErrEmptyMembers = errors.New("at least one member is required")

// InvalidMemberError reports a member reference outside the allowed set,
// e.g. a custom split value keyed by someone who is not a participant, or a
// fallback payer who is not a remaining member.
type InvalidMemberError struct {
	Member string
}

func (e *InvalidMemberError) Error() string {
	return fmt.Sprintf("invalid member: %q", e.Member)
}

// SumKind identifies which custom-value sum failed validation.
type SumKind string

const (
	SumPercentage SumKind = "percentage"
	SumFixed      SumKind = "fixed"
)

// SumMismatchError reports custom split values whose sum deviates from the
// expected total by more than the currency tolerance.
type SumMismatchError struct {
	Kind     SumKind
	Expected float64
	Actual   float64
}

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("%s values must sum to %.2f, got %.2f", e.Kind, e.Expected, e.Actual)
}

// IsValidationError reports whether err is one of the ledger's input
// validation failures. Callers use this to distinguish recoverable bad input
// from programming errors.
func IsValidationError(err error) bool {
	var invalidMember *InvalidMemberError
	var sumMismatch *SumMismatchError
	return errors.Is(err, ErrEmptyMembers) ||
		errors.As(err, &invalidMember) ||
		errors.As(err, &sumMismatch)
}
