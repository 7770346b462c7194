package setup

import (
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/database"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
)

type Config struct {
	Port     string
	LogLevel string

	DBDriver   string
	SQLitePath string
	Postgres   database.Config
	SeedPath   string

	LLMProvider   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	AWSRegion     string
	ClaudeModelID string
	LLMTimeout    time.Duration
	LLMMaxTokens  int

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Port:       getEnv("PORT", "4000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBDriver:   getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath: getEnv("SQLITE_PATH", "campus.db"),
		Postgres: database.Config{
			Host:     getEnv("CAMPUS_DB_HOST", "localhost"),
			Port:     getEnv("CAMPUS_DB_PORT", "5432"),
			User:     getEnv("CAMPUS_DB_USER", "postgres"),
			Password: getEnv("CAMPUS_DB_PASSWORD", ""),
			Database: getEnv("CAMPUS_DB_DATABASE", "campus"),
			SSLMode:  getEnv("CAMPUS_DB_SSLMODE", "disable"),
		},
		SeedPath:      getEnv("SEED_PATH", ""),
		LLMProvider:   getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		LLMTimeout:    getEnvDuration("LLM_TIMEOUT", 15*time.Second),
		LLMMaxTokens:  getEnvInt("LLM_MAX_TOKENS", 512),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}
