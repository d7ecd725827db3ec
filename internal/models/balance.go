package models

// Balance is one member's net position against the group.
// Positive means the group owes them money, negative means they owe the group.
type Balance struct {
	Member string  `json:"member"`
	Amount float64 `json:"amount"`
}

// SimplifiedDebt is one recommended transfer produced by collapsing all net
// balances. Order within a settlement plan follows construction (descending
// magnitudes) and carries no further meaning.
type SimplifiedDebt struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// MemberBalance aggregates a settlement plan from one member's point of view.
// It is a read-only projection of the SimplifiedDebt list, not a new fact.
type MemberBalance struct {
	Member string `json:"member"`

	// TotalOwed is the sum this member must pay out.
	TotalOwed float64 `json:"total_owed"`

	// TotalReceivable is the sum other members will pay this member.
	TotalReceivable float64 `json:"total_receivable"`

	// NetBalance is TotalReceivable - TotalOwed.
	NetBalance float64 `json:"net_balance"`

	// Owes lists the transfers this member sends.
	Owes []SimplifiedDebt `json:"owes,omitempty"`

	// OwedBy lists the transfers this member receives.
	OwedBy []SimplifiedDebt `json:"owed_by,omitempty"`
}
