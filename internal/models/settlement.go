package models

// Settlement represents a direct payment between group members to clear
// debts. Settlements are not split; the full amount moves from FromMember to
// ToMember.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromMember is the member who paid (debtor settling up).
	FromMember string `json:"from_member"`

	// ToMember is the member who received payment (creditor being paid).
	ToMember string `json:"to_member"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `json:"created_by,omitempty"`
}

// Involves reports whether member is either party of the settlement.
func (s *Settlement) Involves(member string) bool {
	return s.FromMember == member || s.ToMember == member
}
