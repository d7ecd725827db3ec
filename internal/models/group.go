package models

// Group represents a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Currency is the ISO 4217 code used for display (e.g., "USD", "EUR").
	// The ledger does no conversion; a group has exactly one currency.
	Currency string `json:"currency"`

	// Members is the list of member names in this group.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether name is a member of the group.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}
