package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	InteractionTopic   string
	ReportBaseURL      string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host             string
	Port             int
	Email            string
	Password         string
	SenderName       string
	SummaryRecipient string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // e.g. "gpt-4o-mini", "llama3"
	OllamaBaseURL     string
	RealtimeModel     string
	GradeTimeoutSecs  int
	RealtimeTimeoutMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174,http://127.0.0.1:5173,http://127.0.0.1:5174"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			InteractionTopic:   getEnv("INTERACTION_TOPIC_NAME", "INTERVIEW_INTERACTION"),
			ReportBaseURL:      getEnv("REPORT_BASE_URL", "https://reports.example.com"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:             getEnv("SMTP_HOST", ""),
			Port:             getEnvAsInt("SMTP_PORT", 587),
			Email:            getEnv("SMTP_EMAIL", ""),
			Password:         getEnv("SMTP_PASSWORD", ""),
			SenderName:       getEnv("SMTP_SENDER_NAME", "Interview Agent"),
			SummaryRecipient: getEnv("SUMMARY_RECIPIENT_EMAIL", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RealtimeModel:     getEnv("REALTIME_MODEL", "gpt-4o-realtime-preview"),
			GradeTimeoutSecs:  getEnvAsInt("GRADE_TIMEOUT_SECONDS", 20),
			RealtimeTimeoutMs: getEnvAsInt("REALTIME_TIMEOUT_MS", 10000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
