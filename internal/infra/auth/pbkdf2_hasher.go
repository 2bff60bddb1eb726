// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // PRF of the stored credential format
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"finance/config"
	"finance/internal/domain/service"
	"finance/internal/errors"
)

// pbkdf2Hasher derives password keys with PBKDF2-HMAC-SHA1.
type pbkdf2Hasher struct {
	iterations int
	saltSize   int
	keySize    int
	rand       io.Reader
}

// NewPBKDF2Hasher builds the hasher from auth.pbkdf2.
func NewPBKDF2Hasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth config is required")
	}

	p := cfg.Auth.PBKDF2
	if p.Iterations <= 0 || p.SaltSizeBytes <= 0 || p.DerivedKeySizeBytes <= 0 {
		return nil, errors.Errorf("invalid pbkdf2 parameters: iterations=%d salt=%d key=%d",
			p.Iterations, p.SaltSizeBytes, p.DerivedKeySizeBytes)
	}

	return &pbkdf2Hasher{
		iterations: p.Iterations,
		saltSize:   p.SaltSizeBytes,
		keySize:    p.DerivedKeySizeBytes,
		rand:       rand.Reader,
	}, nil
}

// Hash generates a fresh salt and derives the key for password.
func (h *pbkdf2Hasher) Hash(password string) ([]byte, []byte, error) {
	salt := make([]byte, h.saltSize)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return nil, nil, errors.Wrap(err, "read salt")
	}

	return salt, h.derive(password, salt), nil
}

// Check reports whether password derives to expected under salt.
func (h *pbkdf2Hasher) Check(password string, salt, expected []byte) bool {
	if len(expected) != h.keySize {
		return false
	}

	return subtle.ConstantTimeCompare(h.derive(password, salt), expected) == 1
}

func (h *pbkdf2Hasher) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, h.keySize, sha1.New)
}
