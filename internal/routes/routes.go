package routes

import (
	"os"
	"time"

	"github.com/01moynul/sellergen-golang/internal/handlers"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/01moynul/sellergen-golang/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the browser frontend to call the API with a bearer token.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func SetupRouter(h *handlers.Handlers, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	router.Use(CORSMiddleware(corsOrigins))

	// --- Ping Route (Public) ---
	router.GET("/ping", h.Ping)

	// --- Auth Routes (Public) ---
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/forgot-password", h.ForgotPassword)
	router.POST("/reset-password", h.ResetPassword)

	// --- Payment (Public; a token names the buyer) ---
	router.POST("/create-order", middleware.OptionalAuthMiddleware(h.Tokens), h.CreateOrder)

	// --- Protected Routes (Requires a valid token) ---
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(h.Tokens))
	{
		protected.POST("/generate-listing", h.GenerateListing)
		protected.POST("/generate-keywords", h.GenerateKeywords)
		protected.GET("/usage", h.GetUsage)
		protected.GET("/history", h.GetHistory)
		protected.POST("/verify-payment", h.VerifyPayment)

		// --- Admin Routes ---
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminMiddleware(h.Tokens))
		{
			admin.GET("/stats", h.GetAdminStats)
			admin.GET("/users", h.ListUsers)
			admin.GET("/chart-data", h.GetChartData)
			admin.POST("/set-plan/:id", h.SetPlan)
			admin.DELETE("/delete-user/:id", h.DeleteUser)
		}
	}

	registerPages(router, h)
	return router
}

// registerPages serves the HTML frontend when its directory exists.
func registerPages(router *gin.Engine, h *handlers.Handlers) {
	if h.FrontendDir == "" {
		return
	}
	info, err := os.Stat(h.FrontendDir)
	if err != nil || !info.IsDir() {
		logger.Logger.Warnf("frontend directory %q not found; pages disabled", h.FrontendDir)
		return
	}

	router.Static("/static", h.FrontendDir)
	for path, file := range handlers.Pages {
		router.GET(path, h.ServePage(file))
	}
}
