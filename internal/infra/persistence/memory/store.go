// Package memory is an in-process implementation of the persistence layer.
// Units of work are serialised and applied to a private copy of the tables,
// which replaces the live tables only on commit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/errors"

	"github.com/google/uuid"
)

type tables struct {
	accounts     map[string]*entity.Account
	transactions map[uuid.UUID]*entity.Transaction
}

func (t *tables) clone() *tables {
	c := &tables{
		accounts:     make(map[string]*entity.Account, len(t.accounts)),
		transactions: make(map[uuid.UUID]*entity.Transaction, len(t.transactions)),
	}
	for k, v := range t.accounts {
		c.accounts[k] = v.Clone()
	}
	for k, v := range t.transactions {
		tx := *v
		c.transactions[k] = &tx
	}

	return c
}

// Store holds accounts and transactions in memory.
type Store struct {
	mu   sync.Mutex
	data *tables
	now  func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		data: &tables{
			accounts:     map[string]*entity.Account{},
			transactions: map[uuid.UUID]*entity.Transaction{},
		},
		now: time.Now,
	}
}

// Execute runs fn against a private copy of the tables and swaps it in when
// fn returns nil.
func (s *Store) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(domainerrors.ErrTransactionFailed, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn(&factory{data: staged, now: s.now}); err != nil {
		return err
	}

	s.data = staged

	return nil
}

// AccountRepo returns a repository whose every call is its own unit of work.
func (s *Store) AccountRepo() repository.AccountRepository {
	return &autoCommitAccounts{store: s}
}

// TransactionRepo returns a repository whose every call is its own unit of work.
func (s *Store) TransactionRepo() repository.TransactionRepository {
	return &autoCommitTransactions{store: s}
}

type factory struct {
	data *tables
	now  func() time.Time
}

func (f *factory) AccountRepo() repository.AccountRepository {
	return &accountRepository{data: f.data, now: f.now}
}

func (f *factory) TransactionRepo() repository.TransactionRepository {
	return &transactionRepository{data: f.data, now: f.now}
}

type accountRepository struct {
	data *tables
	now  func() time.Time
}

func (r *accountRepository) List(_ context.Context) ([]*entity.Account, error) {
	out := make([]*entity.Account, 0, len(r.data.accounts))
	for _, a := range r.data.accounts {
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	return out, nil
}

func (r *accountRepository) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	a, ok := r.data.accounts[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return a.Clone(), nil
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	if _, exists := r.data.accounts[account.Username]; exists {
		return domainerrors.ErrDuplicateUsername
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := r.now()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.data.accounts[account.Username] = account.Clone()

	return nil
}

func (r *accountRepository) Update(_ context.Context, account *entity.Account) error {
	stored, ok := r.data.accounts[account.Username]
	if !ok {
		return repository.ErrAccountNotFound
	}

	updated := stored.Clone()
	if !account.CredentialsCorrupt() {
		updated.SetCredentials(
			append([]byte(nil), account.PasswordSalt...),
			append([]byte(nil), account.PasswordHash...),
		)
	}
	updated.Role = account.Role
	updated.UpdatedAt = r.now()
	r.data.accounts[account.Username] = updated

	return nil
}

func (r *accountRepository) Delete(_ context.Context, username string) error {
	if _, ok := r.data.accounts[username]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.data.accounts, username)

	return nil
}

func (r *accountRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.data.accounts)), nil
}

type transactionRepository struct {
	data *tables
	now  func() time.Time
}

func (r *transactionRepository) List(_ context.Context) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.data.transactions))
	for _, t := range r.data.transactions {
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *transactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, ok := r.data.transactions[id]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}
	c := *t

	return &c, nil
}

func (r *transactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	now := r.now()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	tx.Date = entity.DateOnly(tx.Date)

	c := *tx
	r.data.transactions[tx.ID] = &c

	return nil
}

func (r *transactionRepository) Update(_ context.Context, tx *entity.Transaction) error {
	stored, ok := r.data.transactions[tx.ID]
	if !ok {
		return repository.ErrTransactionNotFound
	}

	c := *stored
	c.Type = tx.Type
	c.AmountCents = tx.AmountCents
	c.Date = entity.DateOnly(tx.Date)
	c.UpdatedAt = r.now()
	r.data.transactions[tx.ID] = &c

	return nil
}

func (r *transactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.transactions[id]; !ok {
		return repository.ErrTransactionNotFound
	}
	delete(r.data.transactions, id)

	return nil
}
