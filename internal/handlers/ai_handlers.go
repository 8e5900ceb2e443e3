package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/01moynul/sellergen-golang/internal/ai"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/middleware"
	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/01moynul/sellergen-golang/internal/usage"
	"github.com/gin-gonic/gin"
)

// ListingInput defines the structure of the JSON request body.
type ListingInput struct {
	ProductName string `json:"product_name" binding:"required"`
	Category    string `json:"category"`
	Features    string `json:"features"`
	Template    string `json:"template"`
	Language    string `json:"language"`
}

type KeywordsInput struct {
	Product string `json:"product" binding:"required"`
}

// GenerateListing handles POST /generate-listing
func (h *Handlers) GenerateListing(c *gin.Context) {
	// 1. Get User Context (set by AuthMiddleware)
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	// 2. Parse Input
	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Language == "" {
		input.Language = "English"
	}

	// 3. Usage gate
	if !h.checkUsage(c, email) {
		return
	}

	// 4. Call the AI Service
	output := h.AIService.GenerateListing(c.Request.Context(), ai.ListingInput{
		ProductName: input.ProductName,
		Category:    input.Category,
		Features:    input.Features,
		Template:    input.Template,
		Language:    input.Language,
	})

	// 5. Save to History
	h.saveUsageLog(c.Request.Context(), email, models.ActionListing, input.ProductName+" | "+input.Category, output)

	c.JSON(http.StatusOK, gin.H{"output": output})
}

// GenerateKeywords handles POST /generate-keywords
func (h *Handlers) GenerateKeywords(c *gin.Context) {
	// 1. Get User Context
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	// 2. Parse Input
	var input KeywordsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. Usage gate
	if !h.checkUsage(c, email) {
		return
	}

	// 4. Call the AI Service. Failures here are not turned into text.
	output, err := h.AIService.GenerateKeywords(c.Request.Context(), input.Product)
	if err != nil {
		logger.Logger.Errorf("keyword generation failed email=%s err=%v", email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service error. Please try again."})
		return
	}

	// 5. Save to History
	h.saveUsageLog(c.Request.Context(), email, models.ActionKeywords, input.Product, output)

	c.JSON(http.StatusOK, gin.H{"output": output})
}

// GetUsage handles GET /usage
func (h *Handlers) GetUsage(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	snap, err := h.Gate.Snapshot(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, usage.ErrUnknownUser) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if snap.Plan.IsPro() {
		c.JSON(http.StatusOK, gin.H{"plan": models.PlanPro, "used": snap.Used, "limit": "unlimited"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": models.PlanFree, "used": snap.Used, "limit": snap.Limit})
}

// HistoryItem is one row of GET /history.
type HistoryItem struct {
	Action string `json:"action"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Time   string `json:"time"`
}

// GetHistory handles GET /history
func (h *Handlers) GetHistory(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	logs, err := h.Store.ListUsageLogs(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	history := make([]HistoryItem, 0, len(logs))
	for _, entry := range logs {
		history = append(history, HistoryItem{
			Action: entry.ActionType,
			Input:  entry.InputText,
			Output: entry.OutputText,
			Time:   entry.CreatedAt.Format("02-01-2006 15:04"),
		})
	}
	c.JSON(http.StatusOK, history)
}

// checkUsage writes the error response itself and reports whether to continue.
func (h *Handlers) checkUsage(c *gin.Context, email string) bool {
	err := h.Gate.Check(c.Request.Context(), email)
	switch {
	case err == nil:
		return true
	case errors.Is(err, usage.ErrLimitExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Free limit reached. Please upgrade."})
	case errors.Is(err, usage.ErrUnknownUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
	default:
		logger.Logger.Errorf("usage check failed email=%s err=%v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
	return false
}

func (h *Handlers) saveUsageLog(ctx context.Context, email, action, input, output string) {
	entry := &models.UsageLog{
		Email:      email,
		ActionType: action,
		InputText:  input,
		OutputText: output,
		CreatedAt:  h.now().UTC(),
	}
	// The user already has the answer; a failed insert is only logged.
	if err := h.Store.InsertUsageLog(ctx, entry); err != nil {
		logger.Logger.Warnf("failed to save usage log email=%s err=%v", email, err)
	}
}

func currentEmail(c *gin.Context) (string, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.Email() == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
		return "", false
	}
	return claims.Email(), true
}
