package usecase

import (
	"context"
	"time"

	"finance/internal/domain/entity"

	"github.com/google/uuid"
)

// TransactionInput is the writable part of a transaction.
type TransactionInput struct {
	Type        entity.TransactionType `json:"type"`
	AmountCents int64                  `json:"amountCents" validate:"gt=0"`
	Date        time.Time              `json:"date" validate:"required"`
}

// TransactionUsecase is CRUD over income and expense records.
type TransactionUsecase interface {
	List(ctx context.Context) ([]*entity.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Create(ctx context.Context, input *TransactionInput) (*entity.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, input *TransactionInput) (*entity.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
