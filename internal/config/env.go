package config

import (
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
	OpenAIAPIKey          string
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Optional with defaults
	DBPath           string
	HTTPPort         int
	BaseURL          string
	OpenAIModel      string
	Timezone         string
	CalendarID       string
	SubmitDelayMilli int
	ResendAPIKey     string
	EmailFrom        string
	NotifyEmail      string
	DevMode          bool
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),

		// Optional with defaults
		DBPath:           getEnvOrDefault("JALNAN_DB_PATH", "./jalnangage.db"),
		HTTPPort:         getEnvAsIntOrDefault("JALNAN_HTTP_PORT", 8080),
		BaseURL:          getEnvOrDefault("JALNAN_BASE_URL", "http://localhost:8080"),
		OpenAIModel:      getEnvOrDefault("JALNAN_OPENAI_MODEL", "gpt-4o-mini"),
		Timezone:         getEnvOrDefault("JALNAN_TIMEZONE", "Asia/Seoul"),
		CalendarID:       getEnvOrDefault("JALNAN_CALENDAR_ID", "primary"),
		SubmitDelayMilli: getEnvAsIntOrDefault("JALNAN_SUBMIT_DELAY_MS", 500),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        getEnvOrDefault("JALNAN_EMAIL_FROM", "noreply@jalnangage.com"),
		NotifyEmail:      os.Getenv("JALNAN_NOTIFY_EMAIL"),
		DevMode:          getEnvAsBoolOrDefault("JALNAN_DEV_MODE", false),
	}

	return cfg
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

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
