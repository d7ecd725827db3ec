package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage/sqlite"
)

func setupStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "tally-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestExpenseService(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groups := NewGroupService(store)
	expenses := NewExpenseService(store)

	group, err := groups.Create(ctx, "Roommates", "USD", []string{"Alice", "Bob", "Carol"})
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}

	t.Run("create equal expense allocates shares", func(t *testing.T) {
		expense, err := expenses.Create(ctx, ExpenseInput{
			GroupID:     group.ID,
			Description: "Groceries",
			Amount:      100,
			PaidBy:      "Alice",
			SplitType:   models.SplitEqual,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(expense.Shares) != 3 {
			t.Fatalf("got %d shares, want 3", len(expense.Shares))
		}
		var sum float64
		for _, s := range expense.Shares {
			sum += s.Amount
		}
		if math.Abs(sum-100) > 0.01 {
			t.Errorf("shares sum = %v, want 100", sum)
		}
	})

	t.Run("create percentage expense with explicit participants", func(t *testing.T) {
		expense, err := expenses.Create(ctx, ExpenseInput{
			GroupID:      group.ID,
			Description:  "Utilities",
			Amount:       80,
			PaidBy:       "Bob",
			SplitType:    models.SplitPercentage,
			Participants: []string{"Alice", "Bob"},
			CustomValues: map[string]float64{"Alice": 75, "Bob": 25},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if math.Abs(expense.Shares[0].Amount-60) > 0.001 {
			t.Errorf("Alice share = %v, want 60", expense.Shares[0].Amount)
		}
	})

	t.Run("update reallocates", func(t *testing.T) {
		expense, err := expenses.Create(ctx, ExpenseInput{
			GroupID:     group.ID,
			Description: "Cab",
			Amount:      30,
			PaidBy:      "Carol",
			SplitType:   models.SplitEqual,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		updated, err := expenses.Update(ctx, expense.ID, ExpenseInput{
			Description:  "Cab",
			Amount:       40,
			PaidBy:       "Carol",
			SplitType:    models.SplitFixed,
			Participants: []string{"Alice", "Bob"},
			CustomValues: map[string]float64{"Alice": 25, "Bob": 15},
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.ID != expense.ID {
			t.Errorf("ID changed on update: %s -> %s", expense.ID, updated.ID)
		}

		got, err := expenses.Get(ctx, expense.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.SplitType != models.SplitFixed || len(got.Shares) != 2 {
			t.Errorf("updated expense = %+v", got)
		}
	})

	t.Run("rejects non-member payer", func(t *testing.T) {
		_, err := expenses.Create(ctx, ExpenseInput{
			GroupID:   group.ID,
			Amount:    10,
			PaidBy:    "Mallory",
			SplitType: models.SplitEqual,
		})
		var invalid *ledger.InvalidMemberError
		if !errors.As(err, &invalid) || invalid.Member != "Mallory" {
			t.Errorf("error = %v, want InvalidMemberError{Mallory}", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := expenses.Create(ctx, ExpenseInput{
			GroupID:   group.ID,
			Amount:    0,
			PaidBy:    "Alice",
			SplitType: models.SplitEqual,
		})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("error = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("rejects bad percentages atomically", func(t *testing.T) {
		before, err := expenses.ListByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListByGroup failed: %v", err)
		}

		_, err = expenses.Create(ctx, ExpenseInput{
			GroupID:      group.ID,
			Amount:       50,
			PaidBy:       "Alice",
			SplitType:    models.SplitPercentage,
			CustomValues: map[string]float64{"Alice": 50, "Bob": 30, "Carol": 10},
		})
		var mismatch *ledger.SumMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("error = %v, want SumMismatchError", err)
		}

		after, err := expenses.ListByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListByGroup failed: %v", err)
		}
		if len(after) != len(before) {
			t.Error("failed create left a partial expense behind")
		}
	})
}
