package ledger

import (
	"fmt"
	"math"

	"github.com/tallyhq/tally/internal/models"
)

// Allocate computes one share per member for an expense of the given total.
//
// For SplitEqual, customValues is ignored. For SplitPercentage, customValues
// maps members to percentages that must sum to 100 within 0.01. For
// SplitFixed, customValues maps members to amounts that must sum to total
// within 0.01. Members missing from customValues contribute zero; keys
// outside the member set fail with InvalidMemberError.
//
// The returned shares always sum to total within 0.01; equal and percentage
// splits are exact, with any rounding drift absorbed by the last member in
// iteration order. On any validation failure no partial result is returned.
func Allocate(total float64, members []string, splitType models.SplitType, customValues map[string]float64) ([]models.Share, error) {
	if len(members) == 0 {
		return nil, ErrEmptyMembers
	}
	switch splitType {
	case models.SplitEqual:
		return allocateEqual(total, members), nil
	case models.SplitPercentage:
		return allocatePercentage(total, members, customValues)
	case models.SplitFixed:
		return allocateFixed(total, members, customValues)
	default:
		return nil, fmt.Errorf("unknown split type: %v", splitType)
	}
}

// allocateEqual divides total evenly, giving the last member the rounding
// drift so the shares sum exactly to total.
func allocateEqual(total float64, members []string) []models.Share {
	n := float64(len(members))
	per := round2(total / n)
	pct := 100 / n

	amounts := make([]float64, len(members))
	for i := range amounts {
		amounts[i] = per
	}
	distributeRemainder(amounts, total)

	shares := make([]models.Share, len(members))
	for i, m := range members {
		shares[i] = models.Share{Member: m, Amount: amounts[i], Percentage: pct}
	}
	return shares
}

func allocatePercentage(total float64, members []string, percentages map[string]float64) ([]models.Share, error) {
	if err := checkCustomKeys(members, percentages); err != nil {
		return nil, err
	}

	var sum float64
	for _, m := range members {
		sum += percentages[m]
	}
	if math.Abs(sum-100) > epsilon {
		return nil, &SumMismatchError{Kind: SumPercentage, Expected: 100, Actual: sum}
	}

	amounts := make([]float64, len(members))
	for i, m := range members {
		amounts[i] = round2(total * percentages[m] / 100)
	}
	distributeRemainder(amounts, total)

	shares := make([]models.Share, len(members))
	for i, m := range members {
		shares[i] = models.Share{Member: m, Amount: amounts[i], Percentage: percentages[m]}
	}
	return shares, nil
}

func allocateFixed(total float64, members []string, amounts map[string]float64) ([]models.Share, error) {
	if err := checkCustomKeys(members, amounts); err != nil {
		return nil, err
	}

	var sum float64
	for _, m := range members {
		sum += amounts[m]
	}
	if math.Abs(sum-total) > epsilon {
		return nil, &SumMismatchError{Kind: SumFixed, Expected: total, Actual: sum}
	}

	shares := make([]models.Share, len(members))
	for i, m := range members {
		amount := round2(amounts[m])
		shares[i] = models.Share{
			Member:     m,
			Amount:     amount,
			Percentage: round2(amount / total * 100),
		}
	}
	return shares, nil
}

// checkCustomKeys fails if customValues references anyone outside members.
func checkCustomKeys(members []string, customValues map[string]float64) error {
	allowed := make(map[string]bool, len(members))
	for _, m := range members {
		allowed[m] = true
	}
	for m := range customValues {
		if !allowed[m] {
			return &InvalidMemberError{Member: m}
		}
	}
	return nil
}
