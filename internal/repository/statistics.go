package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/KeiviX/expense-manager-app/internal/models"
	sharedredis "github.com/KeiviX/expense-manager-app/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix  = "stats:summary:"
	activityKeyPrefix = "stats:activity:"
)

// StatsReadRepository serves per-user statistics. Monthly summaries use Redis
// as the primary read store with PostgreSQL aggregation on a miss; activity
// counters live only in Redis and are fed by the event stream consumer.
type StatsReadRepository struct {
	db    *sql.DB
	redis *goredis.Client
	cache *sharedredis.ViewCache[models.SummaryView]
}

func NewStatsReadRepository(db *sql.DB, redisClient *goredis.Client) *StatsReadRepository {
	return &StatsReadRepository{
		db:    db,
		redis: redisClient,
		cache: sharedredis.NewViewCache[models.SummaryView](redisClient, 10*time.Minute),
	}
}

// MonthlySummary returns per-month expense and income totals for a user.
func (r *StatsReadRepository) MonthlySummary(ctx context.Context, userID int64) (*models.SummaryView, error) {
	cacheKey := fmt.Sprintf("%s%d", summaryKeyPrefix, userID)
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	expenses, err := r.monthlyTotals(ctx, "expenses", userID)
	if err != nil {
		return nil, err
	}
	income, err := r.monthlyTotals(ctx, "incomes", userID)
	if err != nil {
		return nil, err
	}

	view := &models.SummaryView{Expenses: expenses, Income: income}
	r.cache.Set(ctx, cacheKey, view)
	return view, nil
}

// InvalidateSummary drops the cached summary after a write.
func (r *StatsReadRepository) InvalidateSummary(ctx context.Context, userID int64) {
	r.cache.Delete(ctx, fmt.Sprintf("%s%d", summaryKeyPrefix, userID))
}

func (r *StatsReadRepository) monthlyTotals(ctx context.Context, table string, userID int64) ([]models.MonthlyTotal, error) {
	// table is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount) AS total
		FROM %s
		WHERE user_id = $1
		GROUP BY month
		ORDER BY month
	`, table)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", table, err)
	}
	defer rows.Close()

	totals := []models.MonthlyTotal{}
	for rows.Next() {
		var t models.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan %s totals: %w", table, err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", table, err)
	}
	return totals, nil
}

// IncrWriteCount bumps the per-user activity counter for a record kind.
// Failures are logged, not returned — counters are best effort.
func (r *StatsReadRepository) IncrWriteCount(ctx context.Context, userID int64, kind string) {
	key := fmt.Sprintf("%s%d:%s", activityKeyPrefix, userID, kind)
	if err := r.redis.Incr(ctx, key).Err(); err != nil {
		log.Printf("Failed to increment activity counter %s: %v", key, err)
	}
}

// ActivityCounts reads the per-user write counters. Missing keys count as zero.
func (r *StatsReadRepository) ActivityCounts(ctx context.Context, userID int64) (*models.ActivityView, error) {
	expenseKey := fmt.Sprintf("%s%d:expense", activityKeyPrefix, userID)
	incomeKey := fmt.Sprintf("%s%d:income", activityKeyPrefix, userID)

	values, err := r.redis.MGet(ctx, expenseKey, incomeKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity counters: %w", err)
	}

	view := &models.ActivityView{}
	view.ExpenseWrites = parseCounter(values[0])
	view.IncomeWrites = parseCounter(values[1])
	return view, nil
}

func parseCounter(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	var n int64
	fmt.Sscanf(s, "%d", &n)
	return n
}
