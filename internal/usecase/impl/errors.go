package impl

import (
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/errors"
)

// mapStoreError converts persistence failures into use case error kinds.
// Anything unrecognised becomes ErrInternalError.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrAccountNotFound):
		return domainerrors.ErrAccountNotFound.WrapMessage(err.Error())
	case errors.Is(err, repository.ErrTransactionNotFound):
		return domainerrors.ErrTransactionNotFound.WrapMessage(err.Error())
	case errors.Is(err, domainerrors.ErrDuplicateUsername),
		errors.Is(err, domainerrors.ErrCredentialDecode),
		errors.Is(err, domainerrors.ErrValidationFailed):
		return err
	default:
		return domainerrors.ErrInternalError.WrapMessage(err.Error())
	}
}
