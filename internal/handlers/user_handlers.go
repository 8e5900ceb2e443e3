package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/sellergen-golang/internal/email"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/01moynul/sellergen-golang/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Signup / Login ---

type CredentialsInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /signup
func (h *Handlers) Signup(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if !hashPassword(c, &password, input.Password) {
		return
	}

	// 3. --- Save to Database ---
	_, err := h.Store.CreateUser(c.Request.Context(), input.Email, password.Hash, h.today())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		logger.Logger.Errorf("signup failed email=%s err=%v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup successful"})
}

// Login handles POST /login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Find User ---
	user, err := h.Store.GetUserByEmail(c.Request.Context(), strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 3. --- Check Password ---
	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil || !match {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong password"})
		return
	}

	// 4. --- Issue Token ---
	token, err := h.Tokens.GenerateToken(user.Email, string(user.Plan), user.RoleName())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	var role any
	if user.Role.Valid {
		role = user.Role.String
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"plan":    user.Plan,
		"role":    role,
	})
}

// --- Password Recovery ---

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required"`
}

// forgotPasswordReply is the only answer /forgot-password gives, so it never
// reveals whether the account exists.
const forgotPasswordReply = "If email exists, reset link has been sent"

// ForgotPassword handles POST /forgot-password
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	addr := strings.TrimSpace(input.Email)

	// 1. --- Store a fresh reset token ---
	token := uuid.NewString()
	expiry := h.now().UTC().Add(h.ResetTokenTTL)
	if err := h.Store.SetResetToken(ctx, addr, token, expiry); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.Logger.Errorf("forgot-password: store token email=%s err=%v", addr, err)
		}
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
		return
	}

	// 2. --- Send the link ---
	link := strings.TrimRight(h.BaseURL, "/") + "/reset-password/" + token
	msg, err := email.PasswordResetMessage(addr, link, h.ResetTokenTTL)
	if err == nil {
		err = h.Mailer.Send(ctx, msg)
	}
	if err != nil {
		logger.Logger.Errorf("forgot-password: mail email=%s err=%v", addr, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordReply})
}

type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword handles POST /reset-password
func (h *Handlers) ResetPassword(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Hash the new password ---
	var password models.Password
	if !hashPassword(c, &password, input.NewPassword) {
		return
	}

	// 3. --- Consume the token ---
	err := h.Store.ResetPassword(c.Request.Context(), input.Token, password.Hash, h.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		logger.Logger.Errorf("reset-password failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

// hashPassword answers 400 for passwords bcrypt cannot take.
func hashPassword(c *gin.Context, password *models.Password, plaintext string) bool {
	err := password.Set(plaintext)
	if err == nil {
		return true
	}
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at most 72 bytes"})
		return false
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
	return false
}
