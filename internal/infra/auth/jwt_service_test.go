package auth

import (
	"strings"
	"testing"
	"time"

	"finance/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key-that-is-32-bytes!"

func newTestJWTService(t *testing.T, ttl time.Duration, now time.Time) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		Auth: &config.AuthConfig{SigningKey: testSigningKey, TokenTTL: ttl},
	})
	require.NoError(t, err)

	s := svc.(*jwtService)
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestJWTService(t, 30*time.Minute, now)

	token, err := s.Issue("alice")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, 30*time.Minute, s.TTL())
}

func TestJWTService_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestJWTService(t, time.Minute, issuedAt)

	token, err := s.Issue("alice")
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = s.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_WrongKey(t *testing.T) {
	now := time.Now()
	s := newTestJWTService(t, time.Minute, now)
	token, err := s.Issue("alice")
	require.NoError(t, err)

	other := newTestJWTService(t, time.Minute, now)
	other.key = []byte("another-signing-key-that-is-32-bytes")
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	s := newTestJWTService(t, time.Minute, time.Now())

	claims := jwt.MapClaims{"name": "alice", "exp": time.Now().Add(time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	_, err = s.Validate(token)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Validate(none)
	assert.Error(t, err)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	s := newTestJWTService(t, 0, time.Now())
	assert.Equal(t, config.DefaultTokenTTL, s.TTL())
}

func TestNewJWTService_KeyTooShort(t *testing.T) {
	_, err := NewJWTService(&config.Config{Auth: &config.AuthConfig{SigningKey: "short"}})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{}})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{})
	assert.Error(t, err)
}
