package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// SettlementService records direct payments between group members.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// SettlementInput carries the caller-supplied fields for recording a
// settlement.
type SettlementInput struct {
	GroupID    string
	FromMember string
	ToMember   string
	Amount     float64
	Note       string
	CreatedBy  string
}

// Create validates and persists a settlement.
func (s *SettlementService) Create(ctx context.Context, in SettlementInput) (*models.Settlement, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.FromMember == in.ToMember {
		return nil, ErrSamePayerReceiver
	}

	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	for _, m := range []string{in.FromMember, in.ToMember} {
		if !group.HasMember(m) {
			return nil, &ledger.InvalidMemberError{Member: m}
		}
	}

	settlement := &models.Settlement{
		GroupID:    in.GroupID,
		FromMember: in.FromMember,
		ToMember:   in.ToMember,
		Amount:     in.Amount,
		Note:       in.Note,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.FromMember,
		"to", settlement.ToMember,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// ListByGroup retrieves all settlements for a group, newest first.
func (s *SettlementService) ListByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.store.ListSettlementsByGroup(ctx, groupID)
}

// Delete removes a settlement.
func (s *SettlementService) Delete(ctx context.Context, settlementID string) error {
	return s.store.DeleteSettlement(ctx, settlementID)
}
