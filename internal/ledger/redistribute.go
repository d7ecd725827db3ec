package ledger

import "github.com/tallyhq/tally/internal/models"

// Redistribution is the result of removing a member from a group's history:
// the rewritten expenses and the settlements that must be deleted. The caller
// is responsible for persisting both as a single transaction so the ledger is
// never observable in a partially redistributed state.
type Redistribution struct {
	UpdatedExpenses       []models.Expense
	SettlementIDsToDelete []string
}

// Redistribute rewrites every expense that references memberToRemove so the
// group's books balance without them, and marks every settlement involving
// them for deletion.
//
// Expenses paid by the removed member are reassigned to fallbackPayer, which
// must be one of remainingMembers. The removed member's share is dropped and
// the rest of the expense is reallocated against the original total:
//
//   - Equal splits are re-derived from scratch over remainingMembers.
//   - Percentage splits keep each remaining member's original percentage
//     (derived from amount/total when absent) and re-normalize them to sum
//     to 100. If the removed member held effectively all the percentage, the
//     split falls back to equal.
//   - Fixed splits keep each remaining member's original amount and spread
//     the removed member's portion evenly on top. If the remaining amounts
//     sum to effectively zero, the split falls back to equal.
//
// In every path the last remaining member absorbs rounding drift, so each
// rewritten expense's shares still sum exactly to its amount. Expenses that
// never involved the removed member are left out of the result untouched.
func Redistribute(memberToRemove, fallbackPayer string, remainingMembers []string, expenses []models.Expense, settlements []models.Settlement) (Redistribution, error) {
	if len(remainingMembers) == 0 {
		return Redistribution{}, ErrEmptyMembers
	}
	remaining := make(map[string]bool, len(remainingMembers))
	for _, m := range remainingMembers {
		remaining[m] = true
	}
	if remaining[memberToRemove] {
		return Redistribution{}, &InvalidMemberError{Member: memberToRemove}
	}
	if !remaining[fallbackPayer] {
		return Redistribution{}, &InvalidMemberError{Member: fallbackPayer}
	}

	var result Redistribution
	for _, e := range expenses {
		if !e.Involves(memberToRemove) {
			continue
		}
		result.UpdatedExpenses = append(result.UpdatedExpenses, rewriteExpense(e, memberToRemove, fallbackPayer, remainingMembers))
	}

	for _, s := range settlements {
		if s.Involves(memberToRemove) {
			result.SettlementIDsToDelete = append(result.SettlementIDsToDelete, s.ID)
		}
	}
	return result, nil
}

// rewriteExpense reallocates one affected expense over the remaining members,
// preserving the original total.
func rewriteExpense(e models.Expense, removed, fallbackPayer string, remainingMembers []string) models.Expense {
	updated := e
	if updated.PaidBy == removed {
		updated.PaidBy = fallbackPayer
	}

	switch e.SplitType {
	case models.SplitPercentage:
		updated.Shares = redistributePercentage(e, remainingMembers)
	case models.SplitFixed:
		updated.Shares = redistributeFixed(e, remainingMembers)
	default:
		updated.Shares = allocateEqual(e.Amount, remainingMembers)
	}
	return updated
}

// redistributePercentage re-normalizes the remaining members' percentages to
// sum to 100 and recomputes amounts against the original total.
func redistributePercentage(e models.Expense, remainingMembers []string) []models.Share {
	pcts := make([]float64, len(remainingMembers))
	var remTotal float64
	for i, m := range remainingMembers {
		if share, ok := e.ShareFor(m); ok {
			pct := share.Percentage
			if pct == 0 && e.Amount > 0 {
				pct = share.Amount / e.Amount * 100
			}
			pcts[i] = pct
			remTotal += pct
		}
	}

	// Only the removed member carried percentage: nothing to scale.
	if remTotal <= epsilon {
		return allocateEqual(e.Amount, remainingMembers)
	}

	amounts := make([]float64, len(remainingMembers))
	for i := range remainingMembers {
		pcts[i] = pcts[i] * 100 / remTotal
		amounts[i] = round2(e.Amount * pcts[i] / 100)
	}
	distributeRemainder(amounts, e.Amount)

	shares := make([]models.Share, len(remainingMembers))
	for i, m := range remainingMembers {
		shares[i] = models.Share{Member: m, Amount: amounts[i], Percentage: pcts[i]}
	}
	return shares
}

// redistributeFixed keeps the remaining members' fixed amounts and spreads
// the removed member's portion evenly across all of them.
func redistributeFixed(e models.Expense, remainingMembers []string) []models.Share {
	fixed := make([]float64, len(remainingMembers))
	var remSum float64
	for i, m := range remainingMembers {
		if share, ok := e.ShareFor(m); ok {
			fixed[i] = share.Amount
			remSum += share.Amount
		}
	}

	// Only the removed member was charged: nothing left to anchor on.
	if remSum <= epsilon {
		return allocateEqual(e.Amount, remainingMembers)
	}

	perMember := round2((e.Amount - remSum) / float64(len(remainingMembers)))
	amounts := make([]float64, len(remainingMembers))
	for i := range remainingMembers {
		amounts[i] = round2(fixed[i] + perMember)
	}
	distributeRemainder(amounts, e.Amount)

	shares := make([]models.Share, len(remainingMembers))
	for i, m := range remainingMembers {
		shares[i] = models.Share{
			Member:     m,
			Amount:     amounts[i],
			Percentage: round2(amounts[i] / e.Amount * 100),
		}
	}
	return shares
}
