// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"finance/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account has the requested username.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the account table. Username uniqueness is enforced
// here: Create returns domainerrors.ErrDuplicateUsername on conflict.
type AccountRepository interface {
	// List returns every account ordered by username.
	List(ctx context.Context) ([]*entity.Account, error)

	// FindByUsername returns ErrAccountNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create inserts a new account and fills in its ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// Update overwrites role and credentials of an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the account, returning ErrAccountNotFound when absent.
	Delete(ctx context.Context, username string) error

	// Count returns the number of accounts.
	Count(ctx context.Context) (int64, error)
}
