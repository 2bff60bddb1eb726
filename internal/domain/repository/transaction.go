package repository

import "context"

// TransactionManager runs a unit of work against the store.
// Execute commits only when fn returns nil, so every mutation made through
// the factory's repositories lands together or not at all.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one open unit of work.
type RepositoryFactory interface {
	// AccountRepo returns an AccountRepository bound to the current transaction.
	AccountRepo() AccountRepository

	// TransactionRepo returns a TransactionRepository bound to the current transaction.
	TransactionRepo() TransactionRepository
}
