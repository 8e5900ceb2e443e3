package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/sellergen-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware checks the session token on the Authorization header and
// stores its claims in the request context.
func AuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		tokenString, err := extractToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWith(c, err)
			return
		}

		// 2. --- Validate Token ---
		claims, err := tm.ValidateToken(tokenString)
		if err != nil {
			abortWith(c, err)
			return
		}

		// 3. --- Success ---
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through. A token that is sent
// must still be valid; its claims are stored like AuthMiddleware does.
func OptionalAuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		AuthMiddleware(tm)(c)
	}
}

// AdminMiddleware checks the token again and requires the admin role.
func AdminMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		tokenString, err := extractToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWith(c, err)
			return
		}

		// 2. --- Validate Token & Role ---
		claims, err := tm.RequireAdmin(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access only"})
				return
			}
			abortWith(c, err)
			return
		}

		// 3. --- Success ---
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims AuthMiddleware stored on the context.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// extractToken accepts "<scheme> <token>". The scheme itself is not checked.
func extractToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func abortWith(c *gin.Context, err error) {
	msg := "Invalid token"
	if errors.Is(err, auth.ErrMissingToken) {
		msg = "Token missing"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
