package repository

import (
	"context"
	"errors"

	"finance/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when no transaction has the requested ID.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository persists income and expense records.
type TransactionRepository interface {
	// List returns all transactions ordered by date.
	List(ctx context.Context) ([]*entity.Transaction, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	Create(ctx context.Context, tx *entity.Transaction) error

	// Update returns ErrTransactionNotFound when no row matched.
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete returns ErrTransactionNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
