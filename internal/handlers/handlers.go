package handlers

import (
	"time"

	"github.com/01moynul/sellergen-golang/internal/ai"
	"github.com/01moynul/sellergen-golang/internal/auth"
	"github.com/01moynul/sellergen-golang/internal/email"
	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/01moynul/sellergen-golang/internal/payments"
	"github.com/01moynul/sellergen-golang/internal/store"
	"github.com/01moynul/sellergen-golang/internal/usage"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store     *store.Store
	Tokens    *auth.TokenManager
	Gate      *usage.Gate
	AIService *ai.AIService
	Mailer    email.Sender
	Payments  payments.Gateway

	// BaseURL prefixes the password reset link sent by mail.
	BaseURL       string
	ResetTokenTTL time.Duration
	FrontendDir   string

	Now func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handlers) today() string {
	if h.Gate != nil {
		return h.Gate.Today()
	}
	return models.DateKey(h.now())
}
