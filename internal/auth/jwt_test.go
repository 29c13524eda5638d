package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func newValidator(secret string) *JWTValidator {
	v := NewJWTValidator(secret)
	v.now = func() time.Time { return now }
	return v
}

func TestIssueAndValidate(t *testing.T) {
	v := newValidator("secret")

	token, err := v.Issue("a1", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	auth, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a1", auth.UserID)
	assert.True(t, auth.IsAdmin())
	assert.True(t, auth.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestValidate_Errors(t *testing.T) {
	v := newValidator("secret")

	_, err := v.Validate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = v.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := newValidator("other").Issue("u1", domain.RoleUser, time.Hour)
	require.NoError(t, err)
	_, err = v.Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := v.Issue("u1", domain.RoleUser, -time.Minute)
	require.NoError(t, err)
	_, err = v.Validate(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.Validate(noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTValidator(" ").Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_NoExpiry(t *testing.T) {
	v := newValidator("secret")
	token, err := v.Issue("u1", domain.RoleUser, 0)
	require.NoError(t, err)

	auth, err := v.Validate(token)
	require.NoError(t, err)
	assert.True(t, auth.ExpiresAt.IsZero())
	assert.Equal(t, domain.RoleUser, auth.Role)
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, ExtractBearerToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", ExtractBearerToken(r))

	r.Header.Set("Authorization", "bearer  xyz ")
	assert.Equal(t, "xyz", ExtractBearerToken(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractBearerToken(r))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), domain.AuthContext{UserID: "u1"})
	auth, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", auth.UserID)
}
