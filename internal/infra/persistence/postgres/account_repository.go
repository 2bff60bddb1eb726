package postgres

import (
	"context"

	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/errors"
	"finance/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// List returns every account ordered by username.
func (repo *accountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var rows []*model.AccountModel
	if err := repo.db.WithContext(ctx).Order("username").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, toAccountDomain(row))
	}

	return accounts, nil
}

// FindByUsername retrieves a single account by its exact username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var row model.AccountModel
	err := repo.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by username")
	}

	return toAccountDomain(&row), nil
}

// Create inserts account. The ID is generated here when unset.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate account id")
		}
		account.ID = id
	}

	row := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateUsername
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = row.CreatedAt
	account.UpdatedAt = row.UpdatedAt

	return nil
}

// Update overwrites role and credentials of the account matched by username.
// Credentials that were unreadable on load and not replaced since are left
// as stored.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	row := fromAccountDomain(account)
	values := map[string]any{"role": row.Role}
	if !account.CredentialsCorrupt() {
		values["password_hash"] = row.PasswordHash
		values["password_salt"] = row.PasswordSalt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("username = ?", account.Username).
		Updates(values)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return errors.Wrap(domainerrors.ErrValidationFailed, result.Error.Error())
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes the account with username.
func (repo *accountRepository) Delete(ctx context.Context, username string) error {
	result := repo.db.WithContext(ctx).Where("username = ?", username).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Count returns the number of accounts.
func (repo *accountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&n).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count accounts")
	}

	return n, nil
}

// toAccountDomain never fails: a secret that does not decode is recorded on
// the account and surfaces only when the credentials are checked.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	account := &entity.Account{
		ID:        data.ID,
		Username:  data.Username,
		Role:      entity.Role(data.Role),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	hash, err := model.DecodeSecret(data.PasswordHash)
	if err != nil {
		account.MarkCredentialsCorrupt(errors.Wrapf(err, "account %q hash", data.Username))

		return account
	}
	salt, err := model.DecodeSecret(data.PasswordSalt)
	if err != nil {
		account.MarkCredentialsCorrupt(errors.Wrapf(err, "account %q salt", data.Username))

		return account
	}
	account.SetCredentials(salt, hash)

	return account
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: model.EncodeSecret(data.PasswordHash),
		PasswordSalt: model.EncodeSecret(data.PasswordSalt),
		Role:         int(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
