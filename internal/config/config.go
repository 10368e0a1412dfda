package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	DBDriver string
	DBDSN    string

	SessionSecret string
	AdminSecret   string

	// bootstrap admin account, optional
	AdminEmail    string
	AdminPassword string

	CORSAllowedOrigins []string

	PostalLookupURL     string
	PostalLookupTimeout time.Duration

	TelegramBotToken string
	TelegramChatID   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using process environment")
	}

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBDSN:    os.Getenv("DB_DSN"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminSecret:   os.Getenv("ADMIN_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		PostalLookupURL:     getEnv("POSTAL_LOOKUP_URL", "https://api.zippopotam.us"),
		PostalLookupTimeout: getEnvDuration("POSTAL_LOOKUP_TIMEOUT", 5*time.Second),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	if c.AdminSecret == "" {
		return errors.New("ADMIN_SECRET is not set")
	}
	if c.IsProduction() && len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 characters long in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TelegramEnabled reports whether lead notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s: %s, using default %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
