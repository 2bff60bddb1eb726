package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionModel mirrors the 'transactions' table.
type TransactionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        int       `gorm:"type:smallint;not null"`
	AmountCents int64     `gorm:"not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
