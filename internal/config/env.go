package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	TelegramAppID    int
	TelegramAppHash  string
	TelegramBotToken string
	EncryptionKey    string

	// Optional with defaults
	GoogleCredentialsFile string
	DBPath                string
	SessionPath           string
	Timezone              string
	PendingTTLMinutes     int
	Classifier            string // "rules" or "bayes"
	ResendAPIKey          string
	EmailFrom             string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		TelegramAppID:    getEnvAsIntOrDefault("AGENDADOR_TELEGRAM_APP_ID", 0),
		TelegramAppHash:  os.Getenv("AGENDADOR_TELEGRAM_APP_HASH"),
		TelegramBotToken: os.Getenv("AGENDADOR_TELEGRAM_BOT_TOKEN"),
		EncryptionKey:    os.Getenv("AGENDADOR_ENCRYPTION_KEY"),

		// Optional with defaults
		GoogleCredentialsFile: getEnvOrDefault("AGENDADOR_GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		DBPath:                getEnvOrDefault("AGENDADOR_DB_PATH", "./agendador.db"),
		SessionPath:           getEnvOrDefault("AGENDADOR_SESSION_PATH", "./telegram.session"),
		Timezone:              getEnvOrDefault("AGENDADOR_TIMEZONE", "America/Sao_Paulo"),
		PendingTTLMinutes:     getEnvAsIntOrDefault("AGENDADOR_PENDING_TTL_MINUTES", 30),
		Classifier:            getEnvOrDefault("AGENDADOR_CLASSIFIER", "rules"),
		ResendAPIKey:          os.Getenv("AGENDADOR_RESEND_API_KEY"),
		EmailFrom:             os.Getenv("AGENDADOR_EMAIL_FROM"),
	}

	return cfg
}

// Validate reports the first missing required setting
func (c *Config) Validate() error {
	if c.TelegramAppID == 0 {
		return fmt.Errorf("AGENDADOR_TELEGRAM_APP_ID is required")
	}
	if c.TelegramAppHash == "" {
		return fmt.Errorf("AGENDADOR_TELEGRAM_APP_HASH is required")
	}
	if c.TelegramBotToken == "" {
		return fmt.Errorf("AGENDADOR_TELEGRAM_BOT_TOKEN is required")
	}
	if c.EncryptionKey == "" {
		return fmt.Errorf("AGENDADOR_ENCRYPTION_KEY is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
