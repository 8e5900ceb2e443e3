// Package email renders and delivers transactional mail.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/01moynul/sellergen-golang/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PasswordResetSubject is the subject line of the reset mail.
const PasswordResetSubject = "SellerGen AI - Password Reset"

// Message is one HTML mail to a single recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// PasswordResetMessage renders the reset mail for one recipient.
func PasswordResetMessage(to, resetLink string, validFor time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "password_reset.html", map[string]any{
		"ResetLink":    resetLink,
		"ValidMinutes": int(validFor.Minutes()),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render password reset mail: %w", err)
	}
	return Message{To: to, Subject: PasswordResetSubject, HTML: buf.String()}, nil
}

// LogSender writes mail to the log instead of sending it. Used in development
// and whenever SMTP is not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.Logger.Info("=== MOCK EMAIL NOTIFICATION ===")
	logger.Logger.Infof("To: %s", msg.To)
	logger.Logger.Infof("Subject: %s", msg.Subject)
	logger.Logger.Debugf("Body: %s", msg.HTML)
	logger.Logger.Info("=== EMAIL MOCK COMPLETE ===")
	return nil
}
