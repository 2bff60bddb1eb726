// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"finance/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput is a username/password pair. It is never persisted or logged.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username string      `json:"username" validate:"required,max=100"`
	Password string      `json:"password" validate:"required"`
	Role     entity.Role `json:"role"`
}

// UpdateAccountInput changes the role of an account and, when Password is
// non-empty, its credentials.
type UpdateAccountInput struct {
	Username string      `json:"username" validate:"required,max=100"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
}

// --- Output DTOs ---

// LoginOutput carries the issued bearer token and the account role.
type LoginOutput struct {
	Token string
	Role  entity.Role
}

// AccountView is the public projection of an account. It has no secret fields.
type AccountView struct {
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
}

// UpdateAccountOutput reports whether an account matched. Applied is false
// when the username is unknown; nothing is written in that case.
type UpdateAccountOutput struct {
	Applied bool
}

// AuthUsecase manages accounts and exchanges credentials for tokens.
type AuthUsecase interface {
	// Login returns ErrAccountNotFound or ErrInvalidCredentials on failure.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Register(ctx context.Context, input *RegisterInput) error
	ListAccounts(ctx context.Context) ([]AccountView, error)
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error)
	DeleteAccount(ctx context.Context, username string) error

	// SeedAccounts registers the configured seed accounts when the store is empty.
	SeedAccounts(ctx context.Context) error
}
