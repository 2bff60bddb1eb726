package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a persisted login identity. PasswordHash and PasswordSalt are
// raw bytes here; how they are encoded at rest is up to the store.
type Account struct {
	ID           uuid.UUID
	Username     string // unique, case-sensitive
	PasswordHash []byte // derived key
	PasswordSalt []byte
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	credentialsErr error
}

// SetCredentials replaces the hash and salt together and clears any
// recorded decode failure.
func (a *Account) SetCredentials(salt, hash []byte) {
	a.PasswordSalt = salt
	a.PasswordHash = hash
	a.credentialsErr = nil
}

// MarkCredentialsCorrupt records that the stored secret could not be read.
// The account stays usable for listing and role changes; only Credentials fails.
func (a *Account) MarkCredentialsCorrupt(err error) {
	a.PasswordSalt = nil
	a.PasswordHash = nil
	a.credentialsErr = err
}

// CredentialsCorrupt reports whether the store could not decode the secret.
func (a *Account) CredentialsCorrupt() bool {
	return a.credentialsErr != nil
}

// Credentials returns the salt and hash for verification, or the decode
// failure recorded by the store.
func (a *Account) Credentials() (salt, hash []byte, err error) {
	if a.credentialsErr != nil {
		return nil, nil, a.credentialsErr
	}

	return a.PasswordSalt, a.PasswordHash, nil
}

// HasCredentials reports whether both halves of the secret are present.
func (a *Account) HasCredentials() bool {
	return len(a.PasswordHash) > 0 && len(a.PasswordSalt) > 0
}

// Clone returns a deep copy so callers can mutate without aliasing store state.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	clone := *a
	clone.PasswordHash = append([]byte(nil), a.PasswordHash...)
	clone.PasswordSalt = append([]byte(nil), a.PasswordSalt...)

	return &clone
}
