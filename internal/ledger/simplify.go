package ledger

import (
	"math"
	"sort"

	"github.com/tallyhq/tally/internal/models"
)

// Simplify collapses net balances into a short list of pairwise transfers
// that settles every balance to within 0.01 of zero.
//
// Balances are partitioned into creditors (> 0.01) and debtors (< -0.01),
// each sorted descending by magnitude with input order breaking ties, so the
// output is deterministic. Two cursors then repeatedly match the largest
// debtor against the largest creditor, transferring the smaller of the two
// remaining amounts and advancing whichever side is exhausted.
//
// This greedy largest-vs-largest matching is a heuristic: it emits at most
// creditors+debtors-1 transfers, but it does not guarantee the minimum
// possible transfer count for every configuration (true minimization is
// combinatorial). That trade-off is deliberate.
func Simplify(balances []models.Balance) []models.SimplifiedDebt {
	var creditors, debtors []models.Balance
	for _, b := range balances {
		switch {
		case b.Amount > epsilon:
			creditors = append(creditors, b)
		case b.Amount < -epsilon:
			debtors = append(debtors, models.Balance{Member: b.Member, Amount: -b.Amount})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].Amount > creditors[j].Amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].Amount > debtors[j].Amount })

	var debts []models.SimplifiedDebt
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].Amount, creditors[j].Amount)
		if amount > epsilon {
			debts = append(debts, models.SimplifiedDebt{
				From:   debtors[i].Member,
				To:     creditors[j].Member,
				Amount: round2(amount),
			})
		}

		debtors[i].Amount -= amount
		creditors[j].Amount -= amount
		if debtors[i].Amount < epsilon {
			i++
		}
		if creditors[j].Amount < epsilon {
			j++
		}
	}
	// Any leftover on either side is rounding residue and is discarded.
	return debts
}

// AggregateMemberBalances projects a settlement plan into one summary per
// member: totals owed and receivable plus the transfer lists in each
// direction. Members appear in order of first appearance in debts.
func AggregateMemberBalances(debts []models.SimplifiedDebt) []models.MemberBalance {
	byMember := make(map[string]*models.MemberBalance)
	var order []string
	get := func(member string) *models.MemberBalance {
		if mb, ok := byMember[member]; ok {
			return mb
		}
		mb := &models.MemberBalance{Member: member}
		byMember[member] = mb
		order = append(order, member)
		return mb
	}

	for _, d := range debts {
		from := get(d.From)
		from.TotalOwed = round2(from.TotalOwed + d.Amount)
		from.Owes = append(from.Owes, d)

		to := get(d.To)
		to.TotalReceivable = round2(to.TotalReceivable + d.Amount)
		to.OwedBy = append(to.OwedBy, d)
	}

	out := make([]models.MemberBalance, len(order))
	for i, member := range order {
		mb := byMember[member]
		mb.NetBalance = round2(mb.TotalReceivable - mb.TotalOwed)
		out[i] = *mb
	}
	return out
}
