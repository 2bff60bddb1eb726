package handler

import (
	"net/http"

	"finance/internal/delivery/http/response"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/errors"
	"finance/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves /api/auth.
type AccountHandler struct {
	uc usecase.AuthUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AuthUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

type loginResponse struct {
	Token string      `json:"token"`
	Role  entity.Role `json:"role"`
}

// Login exchanges a username and password for a bearer token. Unknown
// accounts and wrong passwords produce the same response.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if errors.Is(err, domainerrors.ErrAccountNotFound) || errors.Is(err, domainerrors.ErrInvalidCredentials) {
		return domainerrors.ErrLoginFailed
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{Token: output.Token, Role: output.Role}, "Login successful")
}

// Register creates an account.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := h.uc.Register(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account registered")
}

// List returns the public view of every account.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if len(accounts) == 0 {
		return response.NotFound(c, "NO_ACCOUNTS", "No users found.")
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// Update changes an account's role and, when given, its password.
func (h *AccountHandler) Update(c echo.Context) error {
	var input usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	output, err := h.uc.UpdateAccount(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}
	if !output.Applied {
		return domainerrors.ErrAccountNotFound
	}

	return response.Success(c, http.StatusOK, nil, "Account updated")
}

// Delete removes the account named in the path.
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteAccount(c.Request().Context(), c.Param("username")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
