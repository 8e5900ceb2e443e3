package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/01moynul/sellergen-golang/internal/config"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"gopkg.in/gomail.v2"
)

// SMTPSender sends mail through an authenticated SMTP server (STARTTLS on 587).
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
	}
	return &SMTPSender{cfg: cfg, dialer: dialer}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("'to' field is required")
	}
	if msg.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := s.build(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		logger.Logger.Errorf("Failed to send email via SMTP: %v", err)
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	logger.Logger.Infof("Email sent to %s via SMTP", msg.To)
	return nil
}

func (s *SMTPSender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.FromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}

// NewSender picks the SMTP sender when SMTP is configured and mocking is off.
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTP.Mock || !cfg.SMTPConfigured() {
		logger.Logger.Warn("SMTP not configured or mocked; emails will be logged only")
		return LogSender{}
	}
	return NewSMTPSender(cfg.SMTP)
}
