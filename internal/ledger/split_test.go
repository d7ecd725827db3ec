package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func shareSum(shares []models.Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		members      []string
		splitType    models.SplitType
		customValues map[string]float64
		wantErr      bool
		validateFunc func(t *testing.T, shares []models.Share)
	}{
		{
			name:      "equal three-way puts drift on last member",
			total:     100,
			members:   []string{"Alice", "Bob", "Carol"},
			splitType: models.SplitEqual,
			validateFunc: func(t *testing.T, shares []models.Share) {
				want := []float64{33.33, 33.33, 33.34}
				for i, w := range want {
					if math.Abs(shares[i].Amount-w) > 0.001 {
						t.Errorf("share[%d] = %v, want %v", i, shares[i].Amount, w)
					}
					if math.Abs(shares[i].Percentage-100.0/3) > 0.001 {
						t.Errorf("share[%d] percentage = %v, want %v", i, shares[i].Percentage, 100.0/3)
					}
				}
			},
		},
		{
			name:      "equal two-way splits cleanly",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitEqual,
			validateFunc: func(t *testing.T, shares []models.Share) {
				for i := range shares {
					if math.Abs(shares[i].Amount-50) > 0.001 {
						t.Errorf("share[%d] = %v, want 50", i, shares[i].Amount)
					}
					if math.Abs(shares[i].Percentage-50) > 0.001 {
						t.Errorf("share[%d] percentage = %v, want 50", i, shares[i].Percentage)
					}
				}
			},
		},
		{
			name:      "percentage split",
			total:     100,
			members:   []string{"Alice", "Bob", "Carol"},
			splitType: models.SplitPercentage,
			customValues: map[string]float64{
				"Alice": 50, "Bob": 30, "Carol": 20,
			},
			validateFunc: func(t *testing.T, shares []models.Share) {
				want := []float64{50, 30, 20}
				for i, w := range want {
					if math.Abs(shares[i].Amount-w) > 0.001 {
						t.Errorf("share[%d] = %v, want %v", i, shares[i].Amount, w)
					}
					if math.Abs(shares[i].Percentage-w) > 0.001 {
						t.Errorf("share[%d] percentage = %v, want %v", i, shares[i].Percentage, w)
					}
				}
			},
		},
		{
			name:      "percentage rounding drift lands on last member",
			total:     0.10,
			members:   []string{"Alice", "Bob", "Carol"},
			splitType: models.SplitPercentage,
			customValues: map[string]float64{
				"Alice": 33.3, "Bob": 33.3, "Carol": 33.4,
			},
			validateFunc: func(t *testing.T, shares []models.Share) {
				// Each share rounds to 0.03; Carol absorbs the leftover cent.
				if math.Abs(shares[2].Amount-0.04) > 0.001 {
					t.Errorf("Carol share = %v, want 0.04", shares[2].Amount)
				}
			},
		},
		{
			name:      "percentage member missing from values owes nothing",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitPercentage,
			customValues: map[string]float64{
				"Alice": 100,
			},
			validateFunc: func(t *testing.T, shares []models.Share) {
				if math.Abs(shares[0].Amount-100) > 0.001 {
					t.Errorf("Alice share = %v, want 100", shares[0].Amount)
				}
				if shares[1].Amount != 0 {
					t.Errorf("Bob share = %v, want 0", shares[1].Amount)
				}
			},
		},
		{
			name:      "fixed split back-computes percentages",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitFixed,
			customValues: map[string]float64{
				"Alice": 60, "Bob": 40,
			},
			validateFunc: func(t *testing.T, shares []models.Share) {
				if math.Abs(shares[0].Amount-60) > 0.001 || math.Abs(shares[0].Percentage-60) > 0.001 {
					t.Errorf("Alice share = %+v, want 60 at 60%%", shares[0])
				}
				if math.Abs(shares[1].Amount-40) > 0.001 || math.Abs(shares[1].Percentage-40) > 0.001 {
					t.Errorf("Bob share = %+v, want 40 at 40%%", shares[1])
				}
			},
		},
		{
			name:      "empty member set",
			total:     100,
			members:   nil,
			splitType: models.SplitEqual,
			wantErr:   true,
		},
		{
			name:      "percentages not summing to 100",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitPercentage,
			customValues: map[string]float64{
				"Alice": 50, "Bob": 40,
			},
			wantErr: true,
		},
		{
			name:      "fixed amounts not summing to total",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitFixed,
			customValues: map[string]float64{
				"Alice": 60, "Bob": 60,
			},
			wantErr: true,
		},
		{
			name:      "percentage value for non-member",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitPercentage,
			customValues: map[string]float64{
				"Alice": 50, "Bob": 30, "Mallory": 20,
			},
			wantErr: true,
		},
		{
			name:      "fixed value for non-member",
			total:     100,
			members:   []string{"Alice", "Bob"},
			splitType: models.SplitFixed,
			customValues: map[string]float64{
				"Alice": 50, "Mallory": 50,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Allocate(tt.total, tt.members, tt.splitType, tt.customValues)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Allocate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsValidationError(err) {
					t.Errorf("expected a validation error, got %v", err)
				}
				return
			}
			if len(shares) != len(tt.members) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.members))
			}
			// Exact-sum invariant holds for every policy.
			if sum := shareSum(shares); math.Abs(sum-tt.total) > 0.01 {
				t.Errorf("shares sum = %v, want %v", sum, tt.total)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestAllocateErrorDetails(t *testing.T) {
	_, err := Allocate(100, []string{"Alice"}, models.SplitPercentage, map[string]float64{"Alice": 90})
	var mismatch *SumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SumMismatchError, got %v", err)
	}
	if mismatch.Kind != SumPercentage || mismatch.Expected != 100 || math.Abs(mismatch.Actual-90) > 0.001 {
		t.Errorf("unexpected mismatch detail: %+v", mismatch)
	}

	_, err = Allocate(100, []string{"Alice"}, models.SplitFixed, map[string]float64{"Bob": 100})
	var invalid *InvalidMemberError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidMemberError, got %v", err)
	}
	if invalid.Member != "Bob" {
		t.Errorf("invalid member = %q, want Bob", invalid.Member)
	}
}
