package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// DBConnString is optional. Without it wizard sessions live in memory.
	DBConnString         string        `envconfig:"DB_DSN"`
	SessionTTL           time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"10m"`

	// Embedded so its variables keep their own names (no SMTP_ prefix doubling).
	SMTP

	AllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMin int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"20"`
	// TrustedProxies lists proxies whose X-Forwarded-For is believed. Empty
	// means the socket address is the client IP.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	RequireCustomDesigns bool   `envconfig:"WIZARD_REQUIRE_CUSTOM_DESIGNS" default:"false"`
	MaxDesignBytes       int    `envconfig:"MAX_DESIGN_BYTES" default:"10485760"`
	MaxInlineDesignBytes int    `envconfig:"MAX_INLINE_DESIGN_BYTES" default:"2097152"`
	CatalogFile          string `envconfig:"CATALOG_FILE"`
	// MaxRequestBytes caps a request body. Zero derives it from MaxDesignBytes.
	MaxRequestBytes int64 `envconfig:"MAX_REQUEST_BYTES"`
}

// designsPerRequest is how many full-size base64 designs a derived body
// limit leaves room for.
const designsPerRequest = 4

// SMTP describes the outgoing mail relay. Empty credentials are allowed at
// load time; the mailer reports them through its health probe instead.
type SMTP struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"MAIL_FROM"`
	To       string `envconfig:"ORDER_EMAIL_TO"`
}

// Load reads an optional .env file outside production and then builds Config
// from the environment.
func Load() (Config, error) {
	if !strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.SMTP.To == "" {
		cfg.SMTP.To = cfg.SMTP.From
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.MaxDesignBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_DESIGN_BYTES must be positive")
	}
	if cfg.MaxRequestBytes < 0 {
		return Config{}, fmt.Errorf("MAX_REQUEST_BYTES must not be negative")
	}
	if cfg.MaxRequestBytes == 0 {
		// base64 grows a design by 4/3; 1 MiB covers the rest of the JSON.
		cfg.MaxRequestBytes = designsPerRequest*(int64(cfg.MaxDesignBytes)*4/3+4) + 1<<20
	}
	return cfg, nil
}

// IsDevelopment reports whether verbose, human-readable output is wanted.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}
