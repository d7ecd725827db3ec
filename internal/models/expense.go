package models

// Expense represents a shared expense paid by one member and split among
// participants according to a split policy.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Description is the human-readable label (e.g., "Dinner", "Rent").
	Description string `json:"description"`

	// Amount is the full expense amount paid by PaidBy.
	Amount float64 `json:"amount"`

	// PaidBy is the member who fronted the money.
	PaidBy string `json:"paid_by"`

	// SplitType is the allocation policy used to derive Shares.
	SplitType SplitType `json:"split_type"`

	// Shares is the per-member allocation. Invariant: the share amounts sum
	// to Amount within 0.01. Order is preserved; the last share in order is
	// the one that absorbed any rounding drift.
	Shares []Share `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string `json:"created_by,omitempty"`
}

// Share is one member's portion of an expense.
type Share struct {
	// Member is the member who owes this portion.
	Member string `json:"member"`

	// Amount is this member's portion of the expense total.
	Amount float64 `json:"amount"`

	// Percentage is this member's portion as a percentage of the total.
	// Informational for equal and percentage splits; back-computed for
	// display on fixed splits.
	Percentage float64 `json:"percentage,omitempty"`
}

// ShareFor returns the share held by member, if any.
func (e *Expense) ShareFor(member string) (Share, bool) {
	for _, s := range e.Shares {
		if s.Member == member {
			return s, true
		}
	}
	return Share{}, false
}

// Involves reports whether member paid for or participates in the expense.
func (e *Expense) Involves(member string) bool {
	if e.PaidBy == member {
		return true
	}
	_, ok := e.ShareFor(member)
	return ok
}
