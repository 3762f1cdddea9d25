package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Assistant AssistantConfig
	Chat      ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type AssistantConfig struct {
	// BaseURL may legitimately be empty: calls become relative and
	// fail per-request, mirroring the frontend's missing-env
	// behaviour. A misconfiguration, not a startup failure.
	BaseURL string
	Timeout time.Duration
}

type ChatConfig struct {
	FlowDelay  time.Duration
	SessionTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/gateway.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Assistant: AssistantConfig{
			BaseURL: getEnv("ASSISTANT_BASE_URL", ""),
			Timeout: time.Duration(getEnvAsInt("ASSISTANT_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Chat: ChatConfig{
			FlowDelay:  time.Duration(getEnvAsInt("GUIDED_FLOW_DELAY_MS", 500)) * time.Millisecond,
			SessionTTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
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
