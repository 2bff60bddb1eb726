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

// transactionRepository implements repository.TransactionRepository using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (repo *transactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	var rows []*model.TransactionModel
	if err := repo.db.WithContext(ctx).Order("date, created_at").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list transactions")
	}

	txs := make([]*entity.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, toTransactionDomain(row))
	}

	return txs, nil
}

func (repo *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var row model.TransactionModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find transaction")
	}

	return toTransactionDomain(&row), nil
}

func (repo *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate transaction id")
		}
		tx.ID = id
	}

	row := fromTransactionDomain(tx)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create transaction")
	}

	tx.CreatedAt = row.CreatedAt
	tx.UpdatedAt = row.UpdatedAt

	return nil
}

func (repo *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", tx.ID).
		Updates(map[string]any{
			"type":         int(tx.Type),
			"amount_cents": tx.AmountCents,
			"date":         entity.DateOnly(tx.Date),
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return errors.Wrap(domainerrors.ErrValidationFailed, result.Error.Error())
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update transaction")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTransactionNotFound
	}

	return nil
}

func (repo *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete transaction")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTransactionNotFound
	}

	return nil
}

func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	return &entity.Transaction{
		ID:          data.ID,
		Type:        entity.TransactionType(data.Type),
		AmountCents: data.AmountCents,
		Date:        entity.DateOnly(data.Date),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	return &model.TransactionModel{
		ID:          data.ID,
		Type:        int(data.Type),
		AmountCents: data.AmountCents,
		Date:        entity.DateOnly(data.Date),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
