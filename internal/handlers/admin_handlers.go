package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/01moynul/sellergen-golang/internal/store"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: Reporting Handlers ---
//

// GetAdminStats is the handler for GET /admin/stats
func (h *Handlers) GetAdminStats(c *gin.Context) {
	counts, err := h.Store.GetPlanCounts(c.Request.Context(), h.today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_users":  counts.Total,
		"free_users":   counts.Free,
		"pro_users":    counts.Pro,
		"active_today": counts.ActiveToday,
	})
}

// GetChartData is the handler for GET /admin/chart-data
func (h *Handlers) GetChartData(c *gin.Context) {
	counts, err := h.Store.GetPlanCounts(c.Request.Context(), h.today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"free":         counts.Free,
		"pro":          counts.Pro,
		"active_today": counts.ActiveToday,
	})
}

// AdminUser is one row of GET /admin/users.
type AdminUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Plan     string `json:"plan"`
	Usage    int    `json:"usage"`
	LastUsed string `json:"last_used"`
}

// ListUsers is the handler for GET /admin/users
func (h *Handlers) ListUsers(c *gin.Context) {
	// 1. --- Query ---
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	// 2. --- Shape rows ---
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUser{
			ID:       u.ID,
			Email:    u.Email,
			Plan:     string(u.Plan),
			Usage:    u.UsageCount,
			LastUsed: formatLastUsed(u.LastUsed.String),
		})
	}
	c.JSON(http.StatusOK, out)
}

//
// --- Admin: Action Handlers ---
//

type SetPlanInput struct {
	Plan string `json:"plan"`
}

// SetPlan is the handler for POST /admin/set-plan/:id?plan=free|pro
func (h *Handlers) SetPlan(c *gin.Context) {
	// 1. --- Parse ID ---
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// 2. --- Plan from query or body ---
	raw := c.Query("plan")
	if raw == "" && c.Request.ContentLength > 0 {
		var input SetPlanInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		raw = input.Plan
	}
	plan, ok := models.ParsePlan(strings.TrimSpace(raw))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan must be 'free' or 'pro'"})
		return
	}

	// 3. --- Update ---
	if err := h.Store.SetPlanByID(c.Request.Context(), userID, plan); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}
	logger.Logger.Infof("admin set plan user=%d plan=%s", userID, plan)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User plan updated to " + string(plan)})
}

// DeleteUser is the handler for DELETE /admin/delete-user/:id
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.Store.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	logger.Logger.Infof("admin deleted user=%d", userID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User deleted successfully"})
}

// formatLastUsed turns the stored YYYY-MM-DD day into DD-MM-YYYY.
func formatLastUsed(day string) string {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return "Never"
	}
	return t.Format("02-01-2006")
}
