package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func TestGroupLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	groups := NewGroupService(store)

	group, err := groups.Create(ctx, "Ski Trip", "EUR", []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.ID == "" || group.CreatedAt == 0 {
		t.Error("expected generated ID and timestamp")
	}

	if _, err := groups.Create(ctx, "Bad", "BOGUS", nil); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("error = %v, want ErrInvalidCurrency", err)
	}

	added, err := groups.AddMembers(ctx, group.ID, []string{"Carol"})
	if err != nil {
		t.Fatalf("AddMembers failed: %v", err)
	}
	if len(added.Members) != 3 {
		t.Errorf("members = %v, want 3 entries", added.Members)
	}

	listed, err := groups.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("got %d groups, want 1", len(listed))
	}

	if err := groups.Delete(ctx, group.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

// TestRemoveMemberFlow exercises the full redistribution path: a member with
// history leaves, their expenses are rewritten, their settlements deleted,
// and the group's books still balance.
func TestRemoveMemberFlow(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store)
	balances := NewBalanceService(store)

	group, err := groups.Create(ctx, "Apartment", "USD", []string{"Alice", "Bob", "Carol"})
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}

	// Carol paid one expense, participates in another, and settled a debt.
	if _, err := expenses.Create(ctx, ExpenseInput{
		GroupID: group.ID, Description: "Rent", Amount: 90,
		PaidBy: "Carol", SplitType: models.SplitEqual,
	}); err != nil {
		t.Fatalf("Create expense failed: %v", err)
	}
	if _, err := expenses.Create(ctx, ExpenseInput{
		GroupID: group.ID, Description: "Internet", Amount: 60,
		PaidBy: "Alice", SplitType: models.SplitPercentage,
		CustomValues: map[string]float64{"Alice": 50, "Bob": 30, "Carol": 20},
	}); err != nil {
		t.Fatalf("Create expense failed: %v", err)
	}
	carolSettlement, err := settlements.Create(ctx, SettlementInput{
		GroupID: group.ID, FromMember: "Carol", ToMember: "Alice", Amount: 12,
	})
	if err != nil {
		t.Fatalf("Create settlement failed: %v", err)
	}

	updated, err := groups.RemoveMember(ctx, group.ID, "Carol", "Alice")
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if updated.HasMember("Carol") {
		t.Error("Carol still in group after removal")
	}

	// The settlement involving Carol is gone.
	remaining, err := settlements.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	for _, s := range remaining {
		if s.ID == carolSettlement.ID {
			t.Error("Carol's settlement survived removal")
		}
	}

	// Every expense still sums to its total and never mentions Carol.
	all, err := expenses.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	for _, e := range all {
		var sum float64
		for _, s := range e.Shares {
			if s.Member == "Carol" {
				t.Errorf("expense %s still has a share for Carol", e.ID)
			}
			sum += s.Amount
		}
		if e.PaidBy == "Carol" {
			t.Errorf("expense %s still paid by Carol", e.ID)
		}
		if math.Abs(sum-e.Amount) > 0.01 {
			t.Errorf("expense %s shares sum = %v, want %v", e.ID, sum, e.Amount)
		}
	}

	// Balances over the remaining members still sum to zero.
	summary, err := balances.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	var net float64
	for _, b := range summary.Balances {
		net += b.Amount
	}
	if math.Abs(net) > 0.01 {
		t.Errorf("balances sum = %v, want 0", net)
	}
	if summary.TotalSpentDisplay == "" {
		t.Error("expected a formatted total")
	}
}

func TestRemoveLastMember(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	groups := NewGroupService(store)

	group, err := groups.Create(ctx, "Solo", "USD", []string{"Alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := groups.RemoveMember(ctx, group.ID, "Alice", ""); !errors.Is(err, ErrLastMember) {
		t.Errorf("error = %v, want ErrLastMember", err)
	}
}
