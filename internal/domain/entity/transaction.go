package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType tells whether money came in or went out.
type TransactionType int

const (
	// TransactionIncome is money received.
	TransactionIncome TransactionType = 0
	// TransactionExpense is money spent.
	TransactionExpense TransactionType = 1
)

// IsValid checks if the TransactionType is one of the enumerated values.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single dated income or expense.
type Transaction struct {
	ID          uuid.UUID
	Type        TransactionType
	AmountCents int64
	Date        time.Time // truncated to the day, UTC
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
