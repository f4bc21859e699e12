package cqrs

import "time"

type RegisterUserCommand struct {
	Email    string
	FullName string
	Password string
}

type LoginCommand struct {
	Email    string
	Password string
}

type CreateExpenseCommand struct {
	UserID      int64
	Amount      float64
	Description string
	Category    string
	Date        time.Time
}

type UpdateExpenseCommand struct {
	ExpenseID   int64
	UserID      int64
	Amount      float64
	Description string
	Category    string
	Date        time.Time
}

type DeleteExpenseCommand struct {
	ExpenseID int64
	UserID    int64
}

type CreateIncomeCommand struct {
	UserID      int64
	Amount      float64
	Description string
	Source      string
	Date        time.Time
	IsRecurring bool
	Frequency   string
}

type UpdateIncomeCommand struct {
	IncomeID    int64
	UserID      int64
	Amount      float64
	Description string
	Source      string
	Date        time.Time
	IsRecurring bool
	Frequency   string
}

type DeleteIncomeCommand struct {
	IncomeID int64
	UserID   int64
}
