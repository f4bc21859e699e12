package query

import (
	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
)

// ExpenseReader is the lookup surface ExpenseQueryService reads through.
type ExpenseReader interface {
	GetByID(id, userID int64) (*models.Expense, error)
	ListByUser(userID int64, skip, limit int) ([]models.Expense, error)
}

// ExpenseQueryService handles expense reads, always scoped to the caller.
type ExpenseQueryService struct {
	expenses ExpenseReader
}

func NewExpenseQueryService(expenses ExpenseReader) *ExpenseQueryService {
	return &ExpenseQueryService{expenses: expenses}
}

func (s *ExpenseQueryService) GetExpense(q cqrs.GetExpenseQuery) (*models.Expense, error) {
	return s.expenses.GetByID(q.ExpenseID, q.UserID)
}

func (s *ExpenseQueryService) ListExpenses(q cqrs.ListExpensesQuery) ([]models.Expense, error) {
	return s.expenses.ListByUser(q.UserID, q.Skip, q.Limit)
}
