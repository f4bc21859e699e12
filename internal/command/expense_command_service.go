package command

import (
	"context"
	"log"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/events"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/repository"
)

// ExpenseWriter is the persistence surface ExpenseCommandService writes through.
type ExpenseWriter interface {
	Create(expense *models.Expense) error
	Update(expense *models.Expense) error
	Delete(id, userID int64) error
}

// ExpenseCommandService handles expense writes. The owner reference always
// comes from the resolved caller identity, never from client input. Cache
// invalidation and event publishing are best effort and never fail the write.
type ExpenseCommandService struct {
	expenses  ExpenseWriter
	stats     *repository.StatsReadRepository
	publisher *events.Publisher
}

func NewExpenseCommandService(
	expenses ExpenseWriter,
	stats *repository.StatsReadRepository,
	publisher *events.Publisher,
) *ExpenseCommandService {
	return &ExpenseCommandService{expenses: expenses, stats: stats, publisher: publisher}
}

func (s *ExpenseCommandService) CreateExpense(cmd cqrs.CreateExpenseCommand) (*models.Expense, error) {
	expense := &models.Expense{
		UserID:      cmd.UserID,
		Amount:      cmd.Amount,
		Description: cmd.Description,
		Category:    cmd.Category,
		Date:        cmd.Date,
	}
	if err := s.expenses.Create(expense); err != nil {
		return nil, err
	}
	s.afterWrite(expense, events.ExpenseCreated)
	return expense, nil
}

func (s *ExpenseCommandService) UpdateExpense(cmd cqrs.UpdateExpenseCommand) (*models.Expense, error) {
	expense := &models.Expense{
		ID:          cmd.ExpenseID,
		UserID:      cmd.UserID,
		Amount:      cmd.Amount,
		Description: cmd.Description,
		Category:    cmd.Category,
		Date:        cmd.Date,
	}
	if err := s.expenses.Update(expense); err != nil {
		return nil, err
	}
	s.afterWrite(expense, events.ExpenseUpdated)
	return expense, nil
}

func (s *ExpenseCommandService) DeleteExpense(cmd cqrs.DeleteExpenseCommand) error {
	if err := s.expenses.Delete(cmd.ExpenseID, cmd.UserID); err != nil {
		return err
	}
	s.afterWrite(&models.Expense{ID: cmd.ExpenseID, UserID: cmd.UserID}, events.ExpenseDeleted)
	return nil
}

func (s *ExpenseCommandService) afterWrite(expense *models.Expense, eventType string) {
	ctx := context.Background()
	s.stats.InvalidateSummary(ctx, expense.UserID)
	if err := s.publisher.Publish(ctx, events.RecordEventsStream, eventType, events.RecordEvent{
		RecordID: expense.ID,
		UserID:   expense.UserID,
		Kind:     "expense",
		Amount:   expense.Amount,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
