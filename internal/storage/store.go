// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tallyhq/tally/internal/models"
)

// ErrNotFound is wrapped by implementations when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. The group.ID field will be populated
	// by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its member list by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup updates a group's name, currency, and member list.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and, via cascade, its records.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers adds members to a group, ignoring names already present.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// CreateExpense persists an expense and its shares in one transaction.
	// The expense.ID field will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its shares in stored order.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces an expense and its shares in one transaction.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup retrieves all expenses for a group, newest first,
	// each with its shares in stored order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateSettlement persists a settlement. The settlement.ID field will be
	// populated by the store.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// ListSettlementsByGroup retrieves all settlements for a group, newest
	// first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ApplyRedistribution applies the outcome of a member removal in a single
	// transaction: rewrites the updated expenses, deletes the listed
	// settlements, and removes the member from the group. Either everything
	// lands or nothing does.
	ApplyRedistribution(ctx context.Context, groupID, member string, updated []models.Expense, settlementIDs []string) error

	// GetSetting returns the value stored under key, or ErrNotFound.
	GetSetting(ctx context.Context, key string) (string, error)

	// PutSetting stores value under key, replacing any previous value.
	PutSetting(ctx context.Context, key, value string) error

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
