package command

import (
	"context"
	"log"
	"time"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/events"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/repository"
)

// IncomeWriter is the persistence surface IncomeCommandService writes through.
type IncomeWriter interface {
	Create(income *models.Income) error
	Update(income *models.Income) error
	Delete(id, userID int64) error
}

// IncomeCommandService handles income writes with the same rules as
// ExpenseCommandService. A frequency submitted on a non-recurring record is
// dropped before it reaches storage.
type IncomeCommandService struct {
	incomes   IncomeWriter
	stats     *repository.StatsReadRepository
	publisher *events.Publisher
}

func NewIncomeCommandService(
	incomes IncomeWriter,
	stats *repository.StatsReadRepository,
	publisher *events.Publisher,
) *IncomeCommandService {
	return &IncomeCommandService{incomes: incomes, stats: stats, publisher: publisher}
}

func (s *IncomeCommandService) CreateIncome(cmd cqrs.CreateIncomeCommand) (*models.Income, error) {
	income := incomeFromCommand(0, cmd.UserID, cmd.Amount, cmd.Description, cmd.Source, cmd.Date, cmd.IsRecurring, cmd.Frequency)
	if err := s.incomes.Create(income); err != nil {
		return nil, err
	}
	s.afterWrite(income, events.IncomeCreated)
	return income, nil
}

func (s *IncomeCommandService) UpdateIncome(cmd cqrs.UpdateIncomeCommand) (*models.Income, error) {
	income := incomeFromCommand(cmd.IncomeID, cmd.UserID, cmd.Amount, cmd.Description, cmd.Source, cmd.Date, cmd.IsRecurring, cmd.Frequency)
	if err := s.incomes.Update(income); err != nil {
		return nil, err
	}
	s.afterWrite(income, events.IncomeUpdated)
	return income, nil
}

func (s *IncomeCommandService) DeleteIncome(cmd cqrs.DeleteIncomeCommand) error {
	if err := s.incomes.Delete(cmd.IncomeID, cmd.UserID); err != nil {
		return err
	}
	s.afterWrite(&models.Income{ID: cmd.IncomeID, UserID: cmd.UserID}, events.IncomeDeleted)
	return nil
}

func (s *IncomeCommandService) afterWrite(income *models.Income, eventType string) {
	ctx := context.Background()
	s.stats.InvalidateSummary(ctx, income.UserID)
	if err := s.publisher.Publish(ctx, events.RecordEventsStream, eventType, events.RecordEvent{
		RecordID: income.ID,
		UserID:   income.UserID,
		Kind:     "income",
		Amount:   income.Amount,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

func incomeFromCommand(id, userID int64, amount float64, description, source string, date time.Time, isRecurring bool, frequency string) *models.Income {
	if !isRecurring {
		frequency = ""
	}
	return &models.Income{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Source:      source,
		Date:        date,
		IsRecurring: isRecurring,
		Frequency:   frequency,
	}
}
