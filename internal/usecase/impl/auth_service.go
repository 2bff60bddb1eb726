// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"finance/config"
	deliverycontext "finance/internal/delivery/context"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/domain/service"
	"finance/internal/errors"
	"finance/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validate     *validator.Validate
	seeds        []config.SeedAccount
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	var seeds []config.SeedAccount
	if params.Config != nil && params.Config.Auth != nil {
		seeds = params.Config.Auth.SeedAccounts
	}

	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		seeds:        seeds,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credential and issues a token for the account.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	account, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		err = mapStoreError(err)
		srv.logFailure(ctx, "Login failed", input.Username, err)

		return nil, err
	}

	salt, hash, err := account.Credentials()
	if err != nil {
		err = mapStoreError(err)
		srv.logFailure(ctx, "Login failed", input.Username, err)

		return nil, err
	}

	if !srv.hasher.Check(input.Password, salt, hash) {
		err := domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
		srv.logFailure(ctx, "Login failed", input.Username, err)

		return nil, err
	}

	token, err := srv.tokenService.Issue(account.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("username", account.Username), slog.String("role", account.Role.String()))

	return &usecase.LoginOutput{Token: token, Role: account.Role}, nil
}

// Register hashes the password and inserts a new account.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WrapMessage("missing account")
	}
	if err := srv.validateAccountInput(input, input.Role); err != nil {
		return err
	}

	salt, key, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.String("username", input.Username), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	account := &entity.Account{
		Username: input.Username,
		Role:     input.Role,
	}
	account.SetCredentials(salt, key)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, account)
	})
	if err != nil {
		err = mapStoreError(err)
		srv.logFailure(ctx, "Registration failed", input.Username, err)

		return err
	}

	srv.log(ctx).Info("Account registered", slog.String("username", account.Username), slog.String("role", account.Role.String()))

	return nil
}

// ListAccounts returns every account without secret fields.
func (srv *authService) ListAccounts(ctx context.Context) ([]usecase.AccountView, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		err = mapStoreError(err)
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, err
	}

	views := make([]usecase.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, usecase.AccountView{Username: a.Username, Role: a.Role})
	}

	return views, nil
}

// UpdateAccount overwrites the role and, for a non-empty password, the
// credentials of an existing account. An unknown username changes nothing
// and is reported through Applied.
func (srv *authService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*usecase.UpdateAccountOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing account")
	}
	if err := srv.validateAccountInput(input, input.Role); err != nil {
		return nil, err
	}

	var salt, key []byte
	if input.Password != "" {
		var err error
		salt, key, err = srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password", slog.String("username", input.Username), slog.Any("error", err))

			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}
	}

	applied := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.AccountRepo()

		account, err := repo.FindByUsername(ctx, input.Username)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		account.Role = input.Role
		if key != nil {
			account.SetCredentials(salt, key)
		}

		if err := repo.Update(ctx, account); err != nil {
			return err
		}
		applied = true

		return nil
	})
	if err != nil {
		err = mapStoreError(err)
		srv.logFailure(ctx, "Account update failed", input.Username, err)

		return nil, err
	}

	if !applied {
		srv.log(ctx).Warn("Account update matched no account", slog.String("username", input.Username))
	} else {
		srv.log(ctx).Info("Account updated",
			slog.String("username", input.Username),
			slog.String("role", input.Role.String()),
			slog.Bool("credentialsChanged", key != nil),
		)
	}

	return &usecase.UpdateAccountOutput{Applied: applied}, nil
}

// DeleteAccount removes the account with username.
func (srv *authService) DeleteAccount(ctx context.Context, username string) error {
	if username == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("username is required")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Delete(ctx, username)
	})
	if err != nil {
		err = mapStoreError(err)
		srv.logFailure(ctx, "Account deletion failed", username, err)

		return err
	}

	srv.log(ctx).Info("Account deleted", slog.String("username", username))

	return nil
}

// SeedAccounts registers the configured accounts on an empty store. A seed
// that already exists, for example created by a concurrent instance, is skipped.
func (srv *authService) SeedAccounts(ctx context.Context) error {
	if len(srv.seeds) == 0 {
		return nil
	}

	n, err := srv.accountRepo.Count(ctx)
	if err != nil {
		return mapStoreError(err)
	}
	if n > 0 {
		srv.log(ctx).Debug("Account store not empty, skipping seed", slog.Int64("accounts", n))

		return nil
	}

	for _, seed := range srv.seeds {
		err := srv.Register(ctx, &usecase.RegisterInput{
			Username: seed.Username,
			Password: seed.Password,
			Role:     entity.Role(seed.Role),
		})
		if err != nil && !errors.Is(err, domainerrors.ErrDuplicateUsername) {
			return errors.Wrapf(err, "seed account %q", seed.Username)
		}
	}

	srv.log(ctx).Info("Seed accounts registered", slog.Int("count", len(srv.seeds)))

	return nil
}

func (srv *authService) validateAccountInput(input any, role entity.Role) error {
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if !role.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	return nil
}

// logFailure records the error kind and username. Passwords never reach the log.
func (srv *authService) logFailure(ctx context.Context, msg, username string, err error) {
	kind := "UNKNOWN"
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		kind = appErr.ErrorCode()
	}

	level := slog.LevelWarn
	if errors.Is(err, domainerrors.ErrInternalError) || errors.Is(err, domainerrors.ErrCredentialDecode) {
		level = slog.LevelError
	}

	srv.log(ctx).LogAttrs(ctx, level, msg,
		slog.String("username", username),
		slog.String("kind", kind),
		slog.Any("error", err),
	)
}
