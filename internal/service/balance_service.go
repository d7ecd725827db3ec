package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/pkg/currency"
)

// BalanceService computes a group's balances, settlement plan, and per-member
// views. Everything is recomputed from the stored records on every call;
// nothing is cached.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GroupBalanceSummary is the full balance picture for one group.
type GroupBalanceSummary struct {
	GroupID           string                  `json:"group_id"`
	Currency          string                  `json:"currency"`
	TotalSpent        float64                 `json:"total_spent"`
	TotalSpentDisplay string                  `json:"total_spent_display"`
	Balances          []models.Balance        `json:"balances"`
	SimplifiedDebts   []models.SimplifiedDebt `json:"simplified_debts"`
	MemberBalances    []models.MemberBalance  `json:"member_balances"`
}

// GroupBalances loads a group's records and derives its balance summary.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string) (*GroupBalanceSummary, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeBalances(group.Members, deref(expenses), derefSettlements(settlements))
	debts := ledger.Simplify(balances)

	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	slog.Info("GroupBalances computed",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"settlements_count", len(settlements),
		"transfers_count", len(debts),
	)

	return &GroupBalanceSummary{
		GroupID:           group.ID,
		Currency:          group.Currency,
		TotalSpent:        totalSpent,
		TotalSpentDisplay: currency.Format(group.Currency, totalSpent),
		Balances:          balances,
		SimplifiedDebts:   debts,
		MemberBalances:    ledger.AggregateMemberBalances(debts),
	}, nil
}
