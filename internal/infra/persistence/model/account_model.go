package model

import (
	"encoding/base64"
	"time"

	domainerrors "finance/internal/domain/errors"
	"finance/internal/errors"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. Hash and salt are stored as
// standard base64 text so rows stay readable by the previous service.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	PasswordSalt string    `gorm:"type:text;not null"`
	Role         int       `gorm:"type:smallint;not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// EncodeSecret renders raw hash or salt bytes for storage.
func EncodeSecret(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeSecret parses a stored hash or salt. Malformed input is reported as
// ErrCredentialDecode.
func DecodeSecret(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCredentialDecode, err.Error())
	}

	return b, nil
}
