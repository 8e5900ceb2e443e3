package main

import (
	"context"

	"github.com/01moynul/sellergen-golang/internal/ai"
	"github.com/01moynul/sellergen-golang/internal/auth"
	"github.com/01moynul/sellergen-golang/internal/config"
	"github.com/01moynul/sellergen-golang/internal/database"
	"github.com/01moynul/sellergen-golang/internal/email"
	"github.com/01moynul/sellergen-golang/internal/handlers"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/payments"
	"github.com/01moynul/sellergen-golang/internal/routes"
	"github.com/01moynul/sellergen-golang/internal/store"
	"github.com/01moynul/sellergen-golang/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		logger.Logger.Warn("Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB(cfg.Database)
	if err != nil {
		logger.Logger.Fatalf("Failed to connect to %s database: %v", cfg.Database.Driver, err)
	}
	defer db.Close()

	// 2. --- AI Service Initialization ---
	if cfg.Gemini.APIKey == "" {
		logger.Logger.Fatal("CRITICAL ERROR: GEMINI_API_KEY environment variable is not set.")
	}
	model, err := ai.NewGeminiModel(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Logger.Fatalf("Failed to initialize AI Service: %v", err)
	}
	defer model.Close()

	// 3. --- Session Tokens ---
	if cfg.UsesDefaultSecret() {
		logger.Logger.Warn("JWT_SECRET is not set; using the development secret")
	}

	// 4. --- Payments ---
	var gateway payments.Gateway
	if cfg.Payments.StripeSecretKey != "" {
		gateway = payments.NewStripeGateway(cfg.Payments.StripeSecretKey, cfg.Payments.Amount, cfg.Payments.Currency)
		logger.Logger.Info("Payments: Stripe gateway enabled")
	} else {
		gateway = payments.NewTestGateway(cfg.Payments.Amount, cfg.Payments.Currency)
		logger.Logger.Info("Payments: test mode, every payment is accepted")
	}

	// --- Application Setup ---
	st := store.New(db)
	app := &handlers.Handlers{
		Store:         st,
		Tokens:        auth.NewTokenManager(cfg.JWTSecret),
		Gate:          usage.NewGate(st, cfg.FreeDailyLimit),
		AIService:     ai.NewAIService(model, cfg.AITimeout),
		Mailer:        email.NewSender(cfg),
		Payments:      gateway,
		BaseURL:       cfg.BaseURL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		FrontendDir:   cfg.FrontendDir,
	}

	// 5. --- Admin Accounts ---
	missing, err := st.GrantAdmins(context.Background(), cfg.AdminEmails)
	if err != nil {
		logger.Logger.Fatalf("Failed to grant admin roles: %v", err)
	}
	for _, addr := range missing {
		logger.Logger.Warnf("ADMIN_EMAILS: no account for %s yet; restart after signup", addr)
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.CORSOrigins)

	// --- Start Server ---
	logger.Logger.Infof("Starting SellerGen AI API server on %s...", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		logger.Logger.Fatalf("Failed to start server: %v", err)
	}
}
