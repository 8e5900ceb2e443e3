package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateToken("seller@example.com", "pro", "")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", claims.Email())
	assert.Equal(t, "pro", claims.Plan)
	assert.False(t, claims.IsAdmin())

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, TokenTTL, exp.Sub(iat.Time))
}

func TestValidateTokenErrors(t *testing.T) {
	issued := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	tm := NewTokenManager(testSecret).WithClock(func() time.Time { return issued })
	token, err := tm.GenerateToken("seller@example.com", "free", "")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := tm.ValidateToken("  ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other").WithClock(func() time.Time { return issued }).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)
		_, err := tm.ValidateToken(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager(testSecret).WithClock(func() time.Time { return issued.Add(61 * time.Minute) })
		_, err := later.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("still valid just before expiry", func(t *testing.T) {
		later := NewTokenManager(testSecret).WithClock(func() time.Time { return issued.Add(59 * time.Minute) })
		_, err := later.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := Claims{Plan: "pro", RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "seller@example.com",
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		}}
		hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = tm.ValidateToken(hs512)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "seller@example.com"}}
		forever, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = tm.ValidateToken(forever)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager(testSecret)

	admin, err := tm.GenerateToken("boss@example.com", "pro", "admin")
	require.NoError(t, err)
	claims, err := tm.RequireAdmin(admin)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	user, err := tm.GenerateToken("seller@example.com", "free", "")
	require.NoError(t, err)
	_, err = tm.RequireAdmin(user)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = tm.RequireAdmin("broken")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
