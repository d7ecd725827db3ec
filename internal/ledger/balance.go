package ledger

import "github.com/tallyhq/tally/internal/models"

// ComputeBalances folds expenses and settlements into one net balance per
// member. Positive means the group owes the member, negative means the member
// owes the group.
//
// For each expense the payer is credited the full amount and every
// shareholder is debited their share; a payer who also participates appears
// on both sides and nets correctly. A settlement credits the payer and debits
// the receiver, mirroring an expense consumed entirely by the receiver.
//
// Members that appear in records but not in members are skipped. This is
// intentional: after a member removal their redistributed history may still
// reference them, and those residues must not resurface in reports. The
// skipped contributions still net out globally.
func ComputeBalances(members []string, expenses []models.Expense, settlements []models.Settlement) []models.Balance {
	net := make(map[string]float64, len(members))
	for _, m := range members {
		net[m] = 0
	}
	apply := func(member string, delta float64) {
		if _, known := net[member]; known {
			net[member] += delta
		}
	}

	for _, e := range expenses {
		apply(e.PaidBy, e.Amount)
		for _, s := range e.Shares {
			apply(s.Member, -s.Amount)
		}
	}
	for _, s := range settlements {
		apply(s.FromMember, s.Amount)
		apply(s.ToMember, -s.Amount)
	}

	balances := make([]models.Balance, len(members))
	for i, m := range members {
		balances[i] = models.Balance{Member: m, Amount: round2(net[m])}
	}
	return balances
}
