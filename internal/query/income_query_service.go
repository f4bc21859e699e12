package query

import (
	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
)

// IncomeReader is the lookup surface IncomeQueryService reads through.
type IncomeReader interface {
	GetByID(id, userID int64) (*models.Income, error)
	ListByUser(userID int64, skip, limit int) ([]models.Income, error)
}

// IncomeQueryService handles income reads, always scoped to the caller.
type IncomeQueryService struct {
	incomes IncomeReader
}

func NewIncomeQueryService(incomes IncomeReader) *IncomeQueryService {
	return &IncomeQueryService{incomes: incomes}
}

func (s *IncomeQueryService) GetIncome(q cqrs.GetIncomeQuery) (*models.Income, error) {
	return s.incomes.GetByID(q.IncomeID, q.UserID)
}

func (s *IncomeQueryService) ListIncomes(q cqrs.ListIncomesQuery) ([]models.Income, error) {
	return s.incomes.ListByUser(q.UserID, q.Skip, q.Limit)
}
