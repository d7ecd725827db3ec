package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// ExpenseService manages expenses: allocation of shares on create and update,
// and delegation to storage.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput carries the caller-supplied fields for creating or updating an
// expense. Participants defaults to the full group member list when empty.
// CustomValues holds per-member percentages (percentage split) or amounts
// (fixed split) and is ignored for equal splits.
type ExpenseInput struct {
	GroupID      string
	Description  string
	Amount       float64
	PaidBy       string
	SplitType    models.SplitType
	Participants []string
	CustomValues map[string]float64
	CreatedBy    string
}

// Create validates the input, allocates shares, and persists the expense.
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"split_type", expense.SplitType.String(),
	)
	return expense, nil
}

// Update revalidates and reallocates an existing expense.
func (s *ExpenseService) Update(ctx context.Context, expenseID string, in ExpenseInput) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if in.GroupID == "" {
		in.GroupID = existing.GroupID
	}

	expense, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt
	expense.CreatedBy = existing.CreatedBy

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	return expense, nil
}

// Get retrieves an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	return s.store.DeleteExpense(ctx, expenseID)
}

// ListByGroup retrieves all expenses for a group, newest first.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// build validates the input against the group and allocates shares. It
// returns a complete expense or an error; no partial result.
func (s *ExpenseService) build(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	participants := in.Participants
	if len(participants) == 0 {
		participants = group.Members
	}
	for _, p := range participants {
		if !group.HasMember(p) {
			return nil, &ledger.InvalidMemberError{Member: p}
		}
	}
	if !group.HasMember(in.PaidBy) {
		return nil, &ledger.InvalidMemberError{Member: in.PaidBy}
	}

	shares, err := ledger.Allocate(in.Amount, participants, in.SplitType, in.CustomValues)
	if err != nil {
		return nil, err
	}

	return &models.Expense{
		GroupID:     in.GroupID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Shares:      shares,
		CreatedBy:   in.CreatedBy,
	}, nil
}
