package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// CreateExpense persists an expense and its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, split_type, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PaidBy, expense.SplitType.String(), expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertShares(ctx, tx, expense.ID, expense.Shares); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertShares writes an expense's shares preserving their order; the last
// position is the share that carries rounding drift.
func insertShares(ctx context.Context, tx *sql.Tx, expenseID string, shares []models.Share) error {
	for i, share := range shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, member, amount, percentage, position) VALUES (?, ?, ?, ?, ?)",
			expenseID, share.Member, share.Amount, share.Percentage, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}
	return nil
}

// updateExpenseTx replaces an expense row and its shares inside tx.
func updateExpenseTx(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount = ?, paid_by = ?, split_type = ?
		 WHERE id = ?`,
		expense.Description, expense.Amount, expense.PaidBy, expense.SplitType.String(), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense shares: %w", err)
	}
	return insertShares(ctx, tx, expense.ID, expense.Shares)
}

// UpdateExpense replaces an expense and its shares in one transaction.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateExpenseTx(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its shares in stored order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var splitType string
	var createdBy sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_type, created_at, created_by
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PaidBy, &splitType, &expense.CreatedAt, &createdBy)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.SplitType, err = models.ParseSplitType(splitType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense: %w", err)
	}
	if createdBy.Valid {
		expense.CreatedBy = createdBy.String
	}

	expense.Shares, err = s.expenseShares(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) expenseShares(ctx context.Context, expenseID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member, amount, percentage FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var share models.Share
		if err := rows.Scan(&share.Member, &share.Amount, &share.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_type, created_at, created_by
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var splitType string
		var createdBy sql.NullString
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
			&expense.PaidBy, &splitType, &expense.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.SplitType, err = models.ParseSplitType(splitType)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense: %w", err)
		}
		if createdBy.Valid {
			expense.CreatedBy = createdBy.String
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		expense.Shares, err = s.expenseShares(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// ApplyRedistribution applies a member removal atomically: rewrites the
// updated expenses, deletes the listed settlements, and drops the member from
// the group. A crash mid-way never leaves a partially redistributed ledger.
func (s *SQLiteStore) ApplyRedistribution(ctx context.Context, groupID, member string, updated []models.Expense, settlementIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range updated {
		if err := updateExpenseTx(ctx, tx, &updated[i]); err != nil {
			return err
		}
	}

	for _, id := range settlementIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete settlement: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND name = ?",
		groupID, member,
	); err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
