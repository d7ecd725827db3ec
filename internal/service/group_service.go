package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/pkg/currency"
)

// GroupService manages groups and their member lists, including the
// redistribution flow when a member is removed.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create creates a new group. Currency defaults to USD when empty.
func (s *GroupService) Create(ctx context.Context, name, currencyCode string, members []string) (*models.Group, error) {
	if currencyCode != "" && !currency.Valid(currencyCode) {
		return nil, ErrInvalidCurrency
	}

	group := &models.Group{
		Name:     name,
		Currency: currencyCode,
		Members:  members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// List retrieves all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Update replaces a group's name, currency, and member list. Shrinking the
// member list here does not redistribute history; use RemoveMember for that.
func (s *GroupService) Update(ctx context.Context, group *models.Group) (*models.Group, error) {
	if group.Currency != "" && !currency.Valid(group.Currency) {
		return nil, ErrInvalidCurrency
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", group.ID, "error", err)
		return nil, err
	}
	return s.store.GetGroup(ctx, group.ID)
}

// Delete removes a group and all of its records.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMembers adds members to a group, ignoring names already present.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []string) (*models.Group, error) {
	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// RemoveMember removes a member from a group and rewrites the group's history
// so the books still balance: affected expenses are reallocated over the
// remaining members, expenses the member paid are reassigned to
// fallbackPayer, and settlements involving the member are deleted. All writes
// land in one transaction.
//
// fallbackPayer defaults to the first remaining member when empty.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, member, fallbackPayer string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(member) {
		return nil, &ledger.InvalidMemberError{Member: member}
	}

	remaining := make([]string, 0, len(group.Members)-1)
	for _, m := range group.Members {
		if m != member {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == 0 {
		return nil, ErrLastMember
	}
	if fallbackPayer == "" {
		fallbackPayer = remaining[0]
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result, err := ledger.Redistribute(member, fallbackPayer, remaining, deref(expenses), derefSettlements(settlements))
	if err != nil {
		slog.Error("Redistribute failed", "group_id", groupID, "member", member, "error", err)
		return nil, err
	}

	if err := s.store.ApplyRedistribution(ctx, groupID, member, result.UpdatedExpenses, result.SettlementIDsToDelete); err != nil {
		slog.Error("ApplyRedistribution failed", "group_id", groupID, "member", member, "error", err)
		return nil, err
	}

	slog.Info("Member removed",
		"group_id", groupID,
		"member", member,
		"fallback_payer", fallbackPayer,
		"expenses_rewritten", len(result.UpdatedExpenses),
		"settlements_deleted", len(result.SettlementIDsToDelete),
	)
	return s.store.GetGroup(ctx, groupID)
}

func deref(expenses []*models.Expense) []models.Expense {
	out := make([]models.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = *e
	}
	return out
}

func derefSettlements(settlements []*models.Settlement) []models.Settlement {
	out := make([]models.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = *s
	}
	return out
}
