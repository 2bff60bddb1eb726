package middleware

import (
	"strings"

	deliverycontext "finance/internal/delivery/context"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/domain/service"
	"finance/internal/errors"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo}
}

// Authenticate validates the bearer token and records its name claim.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header is missing")
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header must be a bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage(err.Error())
		}

		deliverycontext.SetUsername(c, claims.Name)

		return next(c)
	}
}

// RequireRole rejects callers whose account does not currently hold role.
// The role is read from the store, so demotions apply before token expiry.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := deliverycontext.GetUsername(c)
			if username == "" {
				return domainerrors.ErrUnauthorized
			}

			account, err := m.accountRepo.FindByUsername(c.Request().Context(), username)
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrUnauthorized.WrapMessage("account no longer exists")
			}
			if err != nil {
				return domainerrors.ErrInternalError.WrapMessage(err.Error())
			}

			if account.Role != role {
				return domainerrors.ErrForbidden.WrapMessage("requires role " + role.String())
			}

			return next(c)
		}
	}
}
