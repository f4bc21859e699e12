package models

// MonthlyTotal is one month's aggregated amount for a single record kind.
type MonthlyTotal struct {
	Month string  `json:"month"` // "2025-01"
	Total float64 `json:"total"`
}

// SummaryView is the read-optimised per-user statistics projection.
// It is cached in Redis and invalidated whenever the owner writes a record.
type SummaryView struct {
	Expenses []MonthlyTotal `json:"expenses"`
	Income   []MonthlyTotal `json:"income"`
}

// ActivityView reports how many writes of each kind a user has performed.
// Counters are maintained by the event stream consumer, so they lag writes
// slightly and reset if Redis is flushed.
type ActivityView struct {
	ExpenseWrites int64 `json:"expense_writes"`
	IncomeWrites  int64 `json:"income_writes"`
}
