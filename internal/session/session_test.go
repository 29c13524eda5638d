package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func signToken(t *testing.T, sub, role string, exp time.Time) string {
	t.Helper()
	claims := Claims{Role: role, RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv(TokenEnv, "")
	s := NewStore(filepath.Join(t.TempDir(), "courtctl", "token"), logger.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestParse(t *testing.T) {
	token := signToken(t, "u42", "admin", now.Add(time.Hour))

	auth, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u42", auth.UserID)
	assert.Equal(t, domain.RoleAdmin, auth.Role)
	assert.True(t, auth.ExpiresAt.Equal(now.Add(time.Hour)))
	assert.Equal(t, token, auth.Token)

	_, err = Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = Parse("  ")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestParse_UnknownRoleIsUser(t *testing.T) {
	auth, err := Parse(signToken(t, "u1", "owner", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, auth.Role)
	assert.True(t, auth.ExpiresAt.IsZero())
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newStore(t)

	assert.Equal(t, domain.AuthContext{}, s.Current())

	token := signToken(t, "u1", "user", now.Add(time.Hour))
	_, err := s.Save(token)
	require.NoError(t, err)

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	auth := s.Current()
	assert.Equal(t, "u1", auth.UserID)
	assert.True(t, auth.IsValid(now))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	assert.Equal(t, domain.AuthContext{}, s.Current())
}

func TestStore_ExpiredIsNoSession(t *testing.T) {
	s := newStore(t)
	_, err := s.Save(signToken(t, "u1", "user", now.Add(-time.Minute)))
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, domain.AuthContext{}, s.Current())
}

func TestStore_EnvOverridesFile(t *testing.T) {
	s := newStore(t)
	_, err := s.Save(signToken(t, "from-file", "user", now.Add(time.Hour)))
	require.NoError(t, err)

	t.Setenv(TokenEnv, signToken(t, "from-env", "admin", now.Add(time.Hour)))

	auth := s.Current()
	assert.Equal(t, "from-env", auth.UserID)
	assert.True(t, auth.IsAdmin())
}
