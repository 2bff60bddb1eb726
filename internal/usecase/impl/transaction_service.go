package impl

import (
	"context"
	"log/slog"

	deliverycontext "finance/internal/delivery/context"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

type transactionService struct {
	txManager repository.TransactionManager
	txRepo    repository.TransactionRepository
	validate  *validator.Validate
	logger    *slog.Logger
}

// TransactionServiceParams holds dependencies for TransactionService, injected by Fx.
type TransactionServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TxRepo    repository.TransactionRepository
	Logger    *slog.Logger
}

// NewTransactionService is the constructor for transactionService.
func NewTransactionService(params TransactionServiceParams) usecase.TransactionUsecase {
	return &transactionService{
		txManager: params.TxManager,
		txRepo:    params.TxRepo,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    params.Logger,
	}
}

func (srv *transactionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *transactionService) List(ctx context.Context) ([]*entity.Transaction, error) {
	txs, err := srv.txRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list transactions", slog.Any("error", err))

		return nil, mapStoreError(err)
	}

	return txs, nil
}

func (srv *transactionService) Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := srv.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return tx, nil
}

func (srv *transactionService) Create(ctx context.Context, input *usecase.TransactionInput) (*entity.Transaction, error) {
	if err := srv.validateInput(input); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		Type:        input.Type,
		AmountCents: input.AmountCents,
		Date:        entity.DateOnly(input.Date),
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TransactionRepo().Create(ctx, tx)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create transaction", slog.Any("error", err))

		return nil, mapStoreError(err)
	}

	srv.log(ctx).Info("Transaction created", slog.String("id", tx.ID.String()), slog.Int64("amountCents", tx.AmountCents))

	return tx, nil
}

func (srv *transactionService) Update(ctx context.Context, id uuid.UUID, input *usecase.TransactionInput) (*entity.Transaction, error) {
	if err := srv.validateInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Transaction
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.TransactionRepo()

		tx, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		tx.Type = input.Type
		tx.AmountCents = input.AmountCents
		tx.Date = entity.DateOnly(input.Date)
		if err := repo.Update(ctx, tx); err != nil {
			return err
		}
		updated = tx

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update transaction", slog.String("id", id.String()), slog.Any("error", err))

		return nil, mapStoreError(err)
	}

	return updated, nil
}

func (srv *transactionService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TransactionRepo().Delete(ctx, id)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete transaction", slog.String("id", id.String()), slog.Any("error", err))

		return mapStoreError(err)
	}

	return nil
}

func (srv *transactionService) validateInput(input *usecase.TransactionInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WrapMessage("missing transaction")
	}
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if !input.Type.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown transaction type")
	}
	if input.Date.IsZero() {
		return domainerrors.ErrValidationFailed.WrapMessage("date is required")
	}

	return nil
}
