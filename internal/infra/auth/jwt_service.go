package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finance/config"
	"finance/internal/domain/service"
	"finance/internal/errors"
)

// MinSigningKeyBytes is the shortest HS256 key accepted.
const MinSigningKeyBytes = 32

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTService is the constructor for jwtService.
// A missing or short signing key is a configuration error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth config is required")
	}
	if len(cfg.Auth.SigningKey) < MinSigningKeyBytes {
		return nil, errors.Errorf("auth.signingKey must be at least %d bytes", MinSigningKeyBytes)
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}

	return &jwtService{
		key: []byte(cfg.Auth.SigningKey),
		ttl: ttl,
		now: time.Now,
	}, nil
}

// Issue signs a token for username that expires after the configured TTL.
func (s *jwtService) Issue(username string) (string, error) {
	claims := service.Claims{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Validate parses tokenString, accepting only HS256 and an unexpired exp.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if claims.Name == "" {
		return nil, errors.New("token has no name claim")
	}

	return claims, nil
}

// TTL returns the lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
