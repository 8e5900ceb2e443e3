package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a login session stays valid.
const TokenTTL = 60 * time.Minute

var (
	ErrMissingToken = errors.New("token missing")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("admin access only")
)

// Claims is what a session token carries. The subject is the user's email.
type Claims struct {
	Plan string `json:"plan"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Email returns the subject.
func (c *Claims) Email() string {
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// TokenManager signs and verifies session tokens with one HMAC secret.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secretKey),
		ttl:       TokenTTL,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for both signing and verification.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// GenerateToken creates a new token for a user.
func (tm *TokenManager) GenerateToken(email, plan, role string) (string, error) {
	// 1. Build the claims
	now := tm.now()
	claims := Claims{
		Plan: plan,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	// 2. Sign with HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ValidateToken parses a token and returns its claims. Malformed, expired,
// tampered and wrongly-signed tokens all come back as ErrInvalidToken.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireAdmin validates the token and checks the admin role.
func (tm *TokenManager) RequireAdmin(tokenString string) (*Claims, error) {
	claims, err := tm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		return nil, ErrForbidden
	}
	return claims, nil
}
