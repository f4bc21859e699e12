package cqrs

// ---------- Expense queries ----------

// GetExpenseQuery fetches a single expense, scoped to its owner.
type GetExpenseQuery struct {
	ExpenseID int64
	UserID    int64
}

// ListExpensesQuery fetches a page of the user's expenses.
type ListExpensesQuery struct {
	UserID int64
	Skip   int
	Limit  int
}

// ---------- Income queries ----------

// GetIncomeQuery fetches a single income record, scoped to its owner.
type GetIncomeQuery struct {
	IncomeID int64
	UserID   int64
}

// ListIncomesQuery fetches a page of the user's income records.
type ListIncomesQuery struct {
	UserID int64
	Skip   int
	Limit  int
}

// ---------- Statistics queries ----------

// MonthlySummaryQuery fetches per-month totals for the user.
type MonthlySummaryQuery struct {
	UserID int64
}

// ActivityQuery fetches write-activity counters for the user.
type ActivityQuery struct {
	UserID int64
}
