package repository

import (
	"database/sql"
	"fmt"

	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/storage"
)

// ExpenseRepository handles persistence for expense records. Every query is
// scoped to the owning user; a row owned by someone else is indistinguishable
// from a row that does not exist.
type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(expense *models.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount, description, category, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		expense.UserID, expense.Amount, expense.Description,
		expense.Category, expense.Date,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(id, userID int64) (*models.Expense, error) {
	query := `
		SELECT id, user_id, amount, description, category, date
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`
	var expense models.Expense
	err := r.db.QueryRow(query, id, userID).Scan(
		&expense.ID, &expense.UserID, &expense.Amount,
		&expense.Description, &expense.Category, &expense.Date,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// ListByUser returns a stable, newest-first page of the user's expenses.
func (r *ExpenseRepository) ListByUser(userID int64, skip, limit int) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, amount, description, category, date
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Query(query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(
			&expense.ID, &expense.UserID, &expense.Amount,
			&expense.Description, &expense.Category, &expense.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Update replaces every mutable field in one statement. The owner reference
// and id are part of the WHERE clause and can never be rewritten.
func (r *ExpenseRepository) Update(expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $3, description = $4, category = $5, date = $6
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query,
		expense.ID, expense.UserID, expense.Amount,
		expense.Description, expense.Category, expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
