// Package entity contains the core business objects of the project.
package entity

// Role is the access level of an account. The numeric values are part of
// the wire contract (login returns the role as an int).
type Role int

const (
	// RoleUser is a regular account.
	RoleUser Role = 0
	// RoleAdmin may manage other accounts.
	RoleAdmin Role = 1
)

// String returns the lowercase name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// IsValid checks if the Role is one of the enumerated values.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
