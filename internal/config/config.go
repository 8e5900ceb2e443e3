// Package config loads runtime settings from the environment and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	Env            string
	BaseURL        string
	FrontendDir    string
	CORSOrigins    []string
	AdminEmails    []string
	LogLevel       string
	JWTSecret      string
	FreeDailyLimit int
	ResetTokenTTL  time.Duration
	AITimeout      time.Duration

	Database DatabaseConfig
	Gemini   GeminiConfig
	SMTP     SMTPConfig
	Payments PaymentsConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	Mock     bool
}

type PaymentsConfig struct {
	StripeSecretKey string
	Amount          int64
	Currency        string
}

// DefaultJWTSecret is only meant for local development. Load reports whether it is in use.
const DefaultJWTSecret = "SELLERGEN_AI_SECRET_2026"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("app_env", "dev")
	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("frontend_dir", "../frontend")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("free_daily_limit", 5)
	v.SetDefault("reset_token_ttl", "30m")
	v.SetDefault("ai_timeout", "0s")

	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_dsn_primary", "root:root@tcp(127.0.0.1:3306)/sellergen?parseTime=true")

	v.SetDefault("gemini_model", "gemini-flash-latest")

	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_from_name", "SellerGen AI")
	v.SetDefault("mock_email_notifications", false)

	v.SetDefault("order_amount", 19900)
	v.SetDefault("order_currency", "INR")
}

// Load reads configuration. Environment variables win over the YAML file named by
// CONFIG_FILE; keys are the lower-cased variable names (e.g. db_driver).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	resetTTL, err := parseDuration(v, "reset_token_ttl")
	if err != nil {
		return nil, err
	}
	aiTimeout, err := parseDuration(v, "ai_timeout")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           v.GetInt("port"),
		Env:            v.GetString("app_env"),
		BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
		FrontendDir:    v.GetString("frontend_dir"),
		CORSOrigins:    splitList(v.GetString("cors_allowed_origins")),
		AdminEmails:    splitList(v.GetString("admin_emails")),
		LogLevel:       v.GetString("log_level"),
		JWTSecret:      v.GetString("jwt_secret"),
		FreeDailyLimit: v.GetInt("free_daily_limit"),
		ResetTokenTTL:  resetTTL,
		AITimeout:      aiTimeout,
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("db_driver")),
			DSN:    v.GetString("db_dsn_primary"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("gemini_api_key"),
			Model:  v.GetString("gemini_model"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_email"),
			Password: v.GetString("smtp_password"),
			FromName: v.GetString("smtp_from_name"),
			Mock:     v.GetBool("mock_email_notifications"),
		},
		Payments: PaymentsConfig{
			StripeSecretKey: v.GetString("stripe_secret_key"),
			Amount:          v.GetInt64("order_amount"),
			Currency:        strings.ToUpper(v.GetString("order_currency")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite3)", c.Database.Driver)
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.FreeDailyLimit <= 0 {
		return fmt.Errorf("FREE_DAILY_LIMIT must be positive, got %d", c.FreeDailyLimit)
	}
	return nil
}

// UsesDefaultSecret reports whether tokens would be signed with the development secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// SMTPConfigured reports whether enough SMTP settings exist to send real mail.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.Username != "" && c.SMTP.Password != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToUpper(key), raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
