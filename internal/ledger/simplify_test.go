package ledger

import (
	"math"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func TestSimplify(t *testing.T) {
	t.Run("two debtors one creditor", func(t *testing.T) {
		balances := []models.Balance{
			{Member: "Alice", Amount: 66.67},
			{Member: "Bob", Amount: -33.33},
			{Member: "Carol", Amount: -33.34},
		}
		debts := Simplify(balances)

		if len(debts) != 2 {
			t.Fatalf("got %d debts, want 2: %+v", len(debts), debts)
		}
		// Carol owes a cent more, so she is matched first.
		if debts[0].From != "Carol" || debts[0].To != "Alice" || math.Abs(debts[0].Amount-33.34) > 0.001 {
			t.Errorf("debts[0] = %+v, want Carol->Alice 33.34", debts[0])
		}
		if debts[1].From != "Bob" || debts[1].To != "Alice" || math.Abs(debts[1].Amount-33.33) > 0.001 {
			t.Errorf("debts[1] = %+v, want Bob->Alice 33.33", debts[1])
		}
	})

	t.Run("settled group produces no transfers", func(t *testing.T) {
		balances := []models.Balance{
			{Member: "Alice", Amount: 0},
			{Member: "Bob", Amount: 0.005},
			{Member: "Carol", Amount: -0.005},
		}
		if debts := Simplify(balances); len(debts) != 0 {
			t.Errorf("got %d debts, want 0: %+v", len(debts), debts)
		}
	})

	t.Run("equal magnitudes keep input order", func(t *testing.T) {
		balances := []models.Balance{
			{Member: "Alice", Amount: 20},
			{Member: "Bob", Amount: -10},
			{Member: "Carol", Amount: -10},
		}
		debts := Simplify(balances)
		if len(debts) != 2 {
			t.Fatalf("got %d debts, want 2", len(debts))
		}
		if debts[0].From != "Bob" || debts[1].From != "Carol" {
			t.Errorf("tie order broken: %+v", debts)
		}
	})

	t.Run("applying transfers settles every balance", func(t *testing.T) {
		balances := []models.Balance{
			{Member: "Alice", Amount: 72.40},
			{Member: "Bob", Amount: -20.15},
			{Member: "Carol", Amount: 11.01},
			{Member: "Dave", Amount: -63.26},
		}
		debts := Simplify(balances)

		remaining := make(map[string]float64, len(balances))
		for _, b := range balances {
			remaining[b.Member] = b.Amount
		}
		for _, d := range debts {
			remaining[d.From] += d.Amount
			remaining[d.To] -= d.Amount
		}
		for member, amount := range remaining {
			if math.Abs(amount) > 0.01 {
				t.Errorf("%s not settled, residual %v", member, amount)
			}
		}

		// Every transfer except possibly the last exhausts one side, so the
		// plan never exceeds creditors+debtors-1 transfers.
		if len(debts) > 3 {
			t.Errorf("got %d transfers, want at most 3", len(debts))
		}
	})
}

func TestAggregateMemberBalances(t *testing.T) {
	debts := []models.SimplifiedDebt{
		{From: "Bob", To: "Alice", Amount: 30},
		{From: "Carol", To: "Alice", Amount: 20},
		{From: "Alice", To: "Dave", Amount: 5},
	}
	views := AggregateMemberBalances(debts)

	byMember := make(map[string]models.MemberBalance, len(views))
	for _, v := range views {
		byMember[v.Member] = v
	}

	alice := byMember["Alice"]
	if math.Abs(alice.TotalReceivable-50) > 0.001 {
		t.Errorf("Alice receivable = %v, want 50", alice.TotalReceivable)
	}
	if math.Abs(alice.TotalOwed-5) > 0.001 {
		t.Errorf("Alice owed = %v, want 5", alice.TotalOwed)
	}
	if math.Abs(alice.NetBalance-45) > 0.001 {
		t.Errorf("Alice net = %v, want 45", alice.NetBalance)
	}
	if len(alice.OwedBy) != 2 || len(alice.Owes) != 1 {
		t.Errorf("Alice counterparties = %d in, %d out; want 2 and 1", len(alice.OwedBy), len(alice.Owes))
	}

	bob := byMember["Bob"]
	if math.Abs(bob.NetBalance+30) > 0.001 {
		t.Errorf("Bob net = %v, want -30", bob.NetBalance)
	}

	if len(views) != 4 {
		t.Errorf("got %d member views, want 4", len(views))
	}
	// First appearance order: Bob, Alice, Carol, Dave.
	if views[0].Member != "Bob" || views[1].Member != "Alice" {
		t.Errorf("unexpected view order: %v, %v", views[0].Member, views[1].Member)
	}
}
