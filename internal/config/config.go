package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT,default=8080"`
	GinMode  string `env:"GIN_MODE,default=release"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DatabaseURL   string `env:"POSTGRES_URL"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE,default=false"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=24h"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency            string `env:"CURRENCY,default=usd"`

	MailProvider string `env:"MAIL_PROVIDER,default=ses"`
	AWSRegion    string `env:"AWS_REGION,default=us-east-1"`
	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME,default=DiplomaKids"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPUseSSL   bool   `env:"SMTP_USE_SSL,default=false"`

	AppBaseURL     string `env:"APP_BASE_URL,default=https://diplomakids.com"`
	StorageBaseURL string `env:"STORAGE_BASE_URL,default=https://storage.diplomakids.com"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES,default=104857600"`

	OutboxSchedule    string `env:"OUTBOX_SCHEDULE,default=@every 2s"`
	OutboxBatchSize   int    `env:"OUTBOX_BATCH_SIZE,default=20"`
	OutboxMaxAttempts int    `env:"OUTBOX_MAX_ATTEMPTS,default=5"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=10"`

	// semicolon separated
	CORSOrigins []string `env:"CORS_ORIGINS,default=*"`
}

// Load reads an optional .env file and decodes the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.OutboxMaxAttempts < 1 {
		return errors.New("OUTBOX_MAX_ATTEMPTS must be at least 1")
	}
	if c.OutboxBatchSize < 1 {
		return errors.New("OUTBOX_BATCH_SIZE must be at least 1")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}
