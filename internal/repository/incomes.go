package repository

import (
	"database/sql"
	"fmt"

	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/storage"
)

// IncomeRepository handles persistence for income records, with the same
// ownership scoping rules as ExpenseRepository.
type IncomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(income *models.Income) error {
	query := `
		INSERT INTO incomes (user_id, amount, description, source, date, is_recurring, frequency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		income.UserID, income.Amount, income.Description, income.Source,
		income.Date, income.IsRecurring, nullString(income.Frequency),
	).Scan(&income.ID)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (r *IncomeRepository) GetByID(id, userID int64) (*models.Income, error) {
	query := `
		SELECT id, user_id, amount, description, source, date, is_recurring, frequency
		FROM incomes
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRow(query, id, userID)
	income, err := scanIncome(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return income, nil
}

// ListByUser returns a stable, newest-first page of the user's income records.
func (r *IncomeRepository) ListByUser(userID int64, skip, limit int) ([]models.Income, error) {
	query := `
		SELECT id, user_id, amount, description, source, date, is_recurring, frequency
		FROM incomes
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Query(query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, *income)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

// Update replaces every mutable field in one statement, scoped to the owner.
func (r *IncomeRepository) Update(income *models.Income) error {
	query := `
		UPDATE incomes
		SET amount = $3, description = $4, source = $5, date = $6, is_recurring = $7, frequency = $8
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query,
		income.ID, income.UserID, income.Amount, income.Description,
		income.Source, income.Date, income.IsRecurring, nullString(income.Frequency),
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
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

func (r *IncomeRepository) Delete(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (*models.Income, error) {
	var income models.Income
	var frequency sql.NullString
	err := row.Scan(
		&income.ID, &income.UserID, &income.Amount, &income.Description,
		&income.Source, &income.Date, &income.IsRecurring, &frequency,
	)
	if err != nil {
		return nil, err
	}
	if frequency.Valid {
		income.Frequency = frequency.String
	}
	return &income, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
