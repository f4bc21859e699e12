package query

import (
	"context"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/repository"
)

// StatsQueryService serves the statistics read models.
type StatsQueryService struct {
	stats *repository.StatsReadRepository
}

func NewStatsQueryService(stats *repository.StatsReadRepository) *StatsQueryService {
	return &StatsQueryService{stats: stats}
}

func (s *StatsQueryService) MonthlySummary(ctx context.Context, q cqrs.MonthlySummaryQuery) (*models.SummaryView, error) {
	return s.stats.MonthlySummary(ctx, q.UserID)
}

func (s *StatsQueryService) Activity(ctx context.Context, q cqrs.ActivityQuery) (*models.ActivityView, error) {
	return s.stats.ActivityCounts(ctx, q.UserID)
}
