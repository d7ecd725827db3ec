// Package export implements versioned JSON export and import of a group's
// ledger. The envelope carries the group, its expenses, and its settlements;
// import validates the frame before any record reaches storage so a corrupt
// file can never land a non-reconciling ledger.
package export

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// Version is the current envelope format version.
const Version = 1

// Envelope is the on-disk frame for one group's complete ledger.
type Envelope struct {
	Version     int                 `json:"version"`
	ExportedAt  int64               `json:"exported_at"`
	Group       models.Group        `json:"group"`
	Expenses    []models.Expense    `json:"expenses"`
	Settlements []models.Settlement `json:"settlements"`
}

// Export assembles the envelope for one group.
func Export(ctx context.Context, store storage.Store, groupID string) (*Envelope, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Version:    Version,
		ExportedAt: time.Now().Unix(),
		Group:      *group,
	}
	for _, e := range expenses {
		env.Expenses = append(env.Expenses, *e)
	}
	for _, s := range settlements {
		env.Settlements = append(env.Settlements, *s)
	}
	return env, nil
}

// Import validates the envelope and persists it as a fresh group. Records
// keep their amounts and shares but receive new identities, so importing the
// same file twice creates two independent groups.
func Import(ctx context.Context, store storage.Store, env *Envelope) (*models.Group, error) {
	if err := Validate(env); err != nil {
		return nil, err
	}

	group := env.Group
	group.ID = ""
	group.CreatedAt = 0
	if err := store.CreateGroup(ctx, &group); err != nil {
		return nil, err
	}

	for _, e := range env.Expenses {
		e.ID = ""
		e.GroupID = group.ID
		if err := store.CreateExpense(ctx, &e); err != nil {
			return nil, err
		}
	}
	for _, s := range env.Settlements {
		s.ID = ""
		s.GroupID = group.ID
		if err := store.CreateSettlement(ctx, &s); err != nil {
			return nil, err
		}
	}
	return &group, nil
}

// Validate checks the envelope's version and internal consistency: every
// expense's shares must sum to its amount within 0.01, and every record must
// reference only group members.
func Validate(env *Envelope) error {
	if env.Version != Version {
		return fmt.Errorf("unsupported export version %d", env.Version)
	}
	if len(env.Group.Members) == 0 {
		return fmt.Errorf("group %q has no members", env.Group.Name)
	}

	for _, e := range env.Expenses {
		if e.Amount <= 0 {
			return fmt.Errorf("expense %q: amount must be positive", e.Description)
		}
		if !env.Group.HasMember(e.PaidBy) {
			return fmt.Errorf("expense %q: payer %q is not a group member", e.Description, e.PaidBy)
		}
		var sum float64
		for _, s := range e.Shares {
			if !env.Group.HasMember(s.Member) {
				return fmt.Errorf("expense %q: share holder %q is not a group member", e.Description, s.Member)
			}
			sum += s.Amount
		}
		if math.Abs(sum-e.Amount) > 0.01 {
			return fmt.Errorf("expense %q: shares sum to %.2f, want %.2f", e.Description, sum, e.Amount)
		}
	}

	for _, s := range env.Settlements {
		if s.Amount <= 0 {
			return fmt.Errorf("settlement %s: amount must be positive", s.ID)
		}
		if !env.Group.HasMember(s.FromMember) || !env.Group.HasMember(s.ToMember) {
			return fmt.Errorf("settlement %s: parties must be group members", s.ID)
		}
	}
	return nil
}
