package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// SESConfig holds AWS SES credentials and options for the email adapter.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// EmailConfig selects the mail provider and sender identity.
type EmailConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	BaseURL            string
	ParticipantIDField string
	CORSOrigins        []string
	Email              EmailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		BaseURL:            os.Getenv("BASE_URL"),
		ParticipantIDField: os.Getenv("PARTICIPANT_ID_FIELD"),
		Email: EmailConfig{
			Provider:    os.Getenv("EMAIL_PROVIDER"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:    os.Getenv("EMAIL_FROM_NAME"),
			SES: SESConfig{
				Region:             os.Getenv("AWS_SES_REGION"),
				AccessKeyID:        os.Getenv("AWS_SES_ACCESS_KEY_ID"),
				SecretAccessKey:    os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
				InsecureSkipVerify: os.Getenv("AWS_SES_INSECURE_SKIP_VERIFY") == "true",
			},
		},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port + "/join-event"
	}
	if cfg.ParticipantIDField == "" {
		cfg.ParticipantIDField = "email"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	return cfg, nil
}
