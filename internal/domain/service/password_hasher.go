// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher derives and verifies salted password secrets.
// Implementations are stateless and safe for concurrent use.
type PasswordHasher interface {
	// Hash derives a key from password under a freshly generated salt.
	Hash(password string) (salt, key []byte, err error)

	// Check re-derives a key from password and salt and compares it with
	// expected in constant time.
	Check(password string, salt, expected []byte) bool
}
