// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Push providers.
const (
	PushLog      = "log"
	PushTelegram = "telegram"
	PushWebhook  = "webhook"
)

// Config holds the service settings.
type Config struct {
	Port              string
	DBDriver          string
	DBPath            string
	DatabaseURL       string
	CachePath         string
	JWTSecret         string
	AdminUser         string
	AdminPassword     string
	NewsAPIKey        string
	NewsAPIURL        string
	PushProvider      string
	TelegramToken     string
	PushWebhookURL    string
	PushWebhookKey    string
	SchedulerInterval time.Duration
	LogVerbose        bool
	LogJSON           bool
	Secure            bool
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads an optional .env file, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DBPath:         getenv("DB_PATH", "moneta.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CachePath:      getenv("CACHE_PATH", "moneta-cache.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminUser:      os.Getenv("ADMIN_USER"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),
		NewsAPIURL:     os.Getenv("NEWS_API_URL"),
		PushProvider:   getenv("PUSH_PROVIDER", PushLog),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		PushWebhookURL: os.Getenv("PUSH_WEBHOOK_URL"),
		PushWebhookKey: os.Getenv("PUSH_WEBHOOK_KEY"),
	}

	var err error
	if cfg.SchedulerInterval, err = time.ParseDuration(getenv("SCHEDULER_INTERVAL", "10s")); err != nil {
		return Config{}, fmt.Errorf("SCHEDULER_INTERVAL: %w", err)
	}
	if cfg.LogVerbose, err = getbool("LOG_VERBOSE"); err != nil {
		return Config{}, err
	}
	if cfg.LogJSON, err = getbool("LOG_JSON"); err != nil {
		return Config{}, err
	}
	if cfg.Secure, err = getbool("SECURE"); err != nil {
		return Config{}, err
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.PushProvider {
	case PushLog:
	case PushTelegram:
		if c.TelegramToken == "" {
			return errors.New("TELEGRAM_TOKEN is required for the telegram push provider")
		}
	case PushWebhook:
		if c.PushWebhookURL == "" {
			return errors.New("PUSH_WEBHOOK_URL is required for the webhook push provider")
		}
	default:
		return fmt.Errorf("unsupported PUSH_PROVIDER %q", c.PushProvider)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
