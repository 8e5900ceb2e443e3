package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/middleware"
	"github.com/01moynul/sellergen-golang/internal/payments"
	"github.com/01moynul/sellergen-golang/internal/store"
	"github.com/gin-gonic/gin"
)

// CreateOrder handles POST /create-order. The order is tied to the signed-in
// buyer when a token was sent.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var buyer string
	if claims, ok := middleware.ClaimsFrom(c); ok {
		buyer = claims.Email()
	}

	order, err := h.Payments.CreateOrder(c.Request.Context(), buyer)
	if err != nil {
		if errors.Is(err, payments.ErrBuyerRequired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type VerifyPaymentInput struct {
	PaymentID string `json:"payment_id"`
}

// VerifyPayment handles POST /verify-payment and upgrades the caller to pro.
func (h *Handlers) VerifyPayment(c *gin.Context) {
	// 1. --- Get User Context ---
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	// 2. --- Optional body ---
	var input VerifyPaymentInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// 3. --- Ask the gateway ---
	if err := h.Payments.VerifyPayment(c.Request.Context(), input.PaymentID, email); err != nil {
		if errors.Is(err, payments.ErrPaymentNotVerified) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not verified"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
		return
	}

	// 4. --- Upgrade, consuming the payment ---
	if err := h.Store.ActivatePro(c.Request.Context(), email, input.PaymentID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if errors.Is(err, store.ErrPaymentUsed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment already used"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}
	logger.Logger.Infof("pro plan activated email=%s payment=%s", email, input.PaymentID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Pro plan activated"})
}
