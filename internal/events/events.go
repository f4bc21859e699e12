package events

import "time"

// Event types
const (
	UserRegistered = "user.registered"

	ExpenseCreated = "expense.created"
	ExpenseUpdated = "expense.updated"
	ExpenseDeleted = "expense.deleted"

	IncomeCreated = "income.created"
	IncomeUpdated = "income.updated"
	IncomeDeleted = "income.deleted"
)

// Stream names
const (
	UserEventsStream   = "user.events"
	RecordEventsStream = "record.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// RecordEvent describes a write to an expense or income record.
// Kind is "expense" or "income".
type RecordEvent struct {
	RecordID int64   `json:"recordId"`
	UserID   int64   `json:"userId"`
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
}
