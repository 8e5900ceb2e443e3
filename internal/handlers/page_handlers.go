package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Pages maps each HTML route to its file in the frontend directory.
var Pages = map[string]string{
	"/":                      "index.html",
	"/signup":                "signup.html",
	"/login":                 "login.html",
	"/dashboard":             "dashboard.html",
	"/admin":                 "admin.html",
	"/users":                 "users.html",
	"/upgrade":               "upgrade.html",
	"/forgot-password":       "forgot_password.html",
	"/reset-password/:token": "reset_password.html",
}

// ServePage returns a handler that sends one frontend file.
func (h *Handlers) ServePage(name string) gin.HandlerFunc {
	path := filepath.Join(h.FrontendDir, name)
	return func(c *gin.Context) {
		c.File(path)
	}
}

// Ping is the health check.
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
