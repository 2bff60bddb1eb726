package postgres

import (
	"gorm.io/gorm"

	"finance/internal/errors"
)

// isUniqueConstraintViolation relies on gorm.Config.TranslateError mapping
// SQLSTATE 23505 onto gorm.ErrDuplicatedKey.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}
