package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	EmailTransportSMTP = "smtp"
	EmailTransportSES  = "ses"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       int    `env:"PORT" envDefault:"3000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN  string `env:"SENTRY_DSN"`

	BaseURL        url.URL  `env:"BASE_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	Secret                     string        `env:"SECRET"`
	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`

	EmailTransport string `env:"EMAIL_TRANSPORT" envDefault:"smtp"`
	EmailSender    string `env:"EMAIL_SENDER,required"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.PostgresqlURL == "" {
		return fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if c.EmailSender == "" {
		return fmt.Errorf("EMAIL_SENDER must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", c.BcryptHasherCost)
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.BaseURL.Scheme == "" || c.BaseURL.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL")
	}

	switch c.EmailTransport {
	case EmailTransportSMTP:
		if c.SMTPPassword == "" {
			return fmt.Errorf("SMTP_PASSWORD must be set when EMAIL_TRANSPORT is %s", EmailTransportSMTP)
		}
	case EmailTransportSES:
		if c.AwsRegion == "" || c.AwsAccessKey == "" || c.AwsSecretKey == "" {
			return fmt.Errorf(
				"AWS_REGION, AWS_ACCESS_KEY and AWS_SECRET_KEY must be set when EMAIL_TRANSPORT is %s",
				EmailTransportSES,
			)
		}
	default:
		return fmt.Errorf("invalid EMAIL_TRANSPORT value: %q", c.EmailTransport)
	}
	return nil
}
