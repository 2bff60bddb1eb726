package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue signs a token whose name claim is username.
	Issue(username string) (string, error)

	// Validate checks signature and expiry and returns the claims.
	// Only the transport authentication middleware calls this.
	Validate(tokenString string) (*Claims, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
