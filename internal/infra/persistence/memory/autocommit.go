package memory

import (
	"context"

	"finance/internal/domain/entity"
	"finance/internal/domain/repository"

	"github.com/google/uuid"
)

type autoCommitAccounts struct {
	store *Store
}

func (a *autoCommitAccounts) List(ctx context.Context) (out []*entity.Account, err error) {
	err = a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		out, err = f.AccountRepo().List(ctx)
		return err
	})
	return out, err
}

func (a *autoCommitAccounts) FindByUsername(ctx context.Context, username string) (out *entity.Account, err error) {
	err = a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		out, err = f.AccountRepo().FindByUsername(ctx, username)
		return err
	})
	return out, err
}

func (a *autoCommitAccounts) Create(ctx context.Context, account *entity.Account) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.AccountRepo().Create(ctx, account)
	})
}

func (a *autoCommitAccounts) Update(ctx context.Context, account *entity.Account) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.AccountRepo().Update(ctx, account)
	})
}

func (a *autoCommitAccounts) Delete(ctx context.Context, username string) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.AccountRepo().Delete(ctx, username)
	})
}

func (a *autoCommitAccounts) Count(ctx context.Context) (n int64, err error) {
	err = a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		n, err = f.AccountRepo().Count(ctx)
		return err
	})
	return n, err
}

type autoCommitTransactions struct {
	store *Store
}

func (a *autoCommitTransactions) List(ctx context.Context) (out []*entity.Transaction, err error) {
	err = a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		out, err = f.TransactionRepo().List(ctx)
		return err
	})
	return out, err
}

func (a *autoCommitTransactions) FindByID(ctx context.Context, id uuid.UUID) (out *entity.Transaction, err error) {
	err = a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		out, err = f.TransactionRepo().FindByID(ctx, id)
		return err
	})
	return out, err
}

func (a *autoCommitTransactions) Create(ctx context.Context, tx *entity.Transaction) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.TransactionRepo().Create(ctx, tx)
	})
}

func (a *autoCommitTransactions) Update(ctx context.Context, tx *entity.Transaction) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.TransactionRepo().Update(ctx, tx)
	})
}

func (a *autoCommitTransactions) Delete(ctx context.Context, id uuid.UUID) error {
	return a.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.TransactionRepo().Delete(ctx, id)
	})
}
