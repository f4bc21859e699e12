package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/KeiviX/expense-manager-app/internal/events"
	"github.com/KeiviX/expense-manager-app/internal/repository"
)

// ActivityConsumer is the Redis stream subscriber handler. It turns record
// write events into per-user activity counters.
type ActivityConsumer struct {
	stats *repository.StatsReadRepository
}

func NewActivityConsumer(stats *repository.StatsReadRepository) *ActivityConsumer {
	return &ActivityConsumer{stats: stats}
}

func (c *ActivityConsumer) HandleRecordEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.ExpenseCreated, events.ExpenseUpdated, events.ExpenseDeleted,
		events.IncomeCreated, events.IncomeUpdated, events.IncomeDeleted:
	default:
		return nil
	}

	dataBytes, _ := json.Marshal(event.Data)
	var data events.RecordEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal %s event: %w", event.Type, err)
	}

	log.Printf("User %d wrote %s record %d (%s)", data.UserID, data.Kind, data.RecordID, event.Type)
	c.stats.IncrWriteCount(ctx, data.UserID, data.Kind)
	return nil
}
