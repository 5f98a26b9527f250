package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported values for MAIL_PROVIDER
const (
	MailProviderSMTP     = "smtp"
	MailProviderResend   = "resend"
	MailProviderPostmark = "postmark"
	MailProviderConsole  = "console"
)

type Config struct {
	ServerPort     string   `env:"SERVER_PORT" envDefault:"8080"`
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	AppURL         string   `env:"APP_URL" envDefault:"http://localhost:8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN      string   `env:"SENTRY_DSN"`

	Mail MailConfig
}

// MailConfig holds everything the contact relay needs to dispatch a message.
// Nothing here is required at startup: a missing value is reported by the
// transport when a message is sent.
type MailConfig struct {
	Provider string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	// Sending account identity and credential (Gmail app password by default)
	Username string `env:"GMAIL_USER"`
	Password string `env:"GMAIL_APP_PASSWORD"`
	// Destination inbox for contact submissions
	To       string `env:"GMAIL_TO"`
	From     string `env:"EMAIL_FROM"`
	FromName string `env:"EMAIL_FROM_NAME" envDefault:"Ainrion Website"`
	// SMTP transport
	SMTPHost    string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort    int    `env:"SMTP_PORT" envDefault:"587"`
	// starttls, tls, or plain. Plain is for a local relay and may omit credentials
	SMTPTLSMode string `env:"SMTP_TLS_MODE" envDefault:"starttls"`
	// Resend transport
	ResendAPIKey string `env:"RESEND_API_KEY"`
	// Postmark transport
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
}

// Load reads configuration from the environment, loading a .env file first
// when one is present. Parse failures fall back to defaults so the site can
// still boot; mail problems surface on dispatch.
func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Printf("[WARNING] Failed to parse environment, using defaults: %v", err)
		cfg = Defaults()
	}
	return cfg
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Defaults returns a Config populated with default values only.
func Defaults() *Config {
	cfg := &Config{}
	_ = env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	c.Mail.Provider = strings.ToLower(strings.TrimSpace(c.Mail.Provider))
	// The sending account is also the From address unless overridden
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	for i, origin := range c.AllowedOrigins {
		c.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
