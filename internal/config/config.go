package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
	Referral ReferralConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "mysql"
	Connection string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	EmbeddingProvider   string // "openai" or "compat"
	EmbeddingModel      string
	EmbeddingBaseURL    string
	EmbeddingCache      string // "memory", "redis" or "none"
	EmbeddingCacheTTL   int    // minutes
	LLMProvider         string // "openai" or "compat"
	LLMModel            string
	LLMBaseURL          string
	LLMBreakerEnabled   bool
	ProviderTimeoutSecs int
}

type SearchConfig struct {
	TopK              int
	MaxSelected       int
	TopN              int
	ProfileTextBudget int
}

type ReferralConfig struct {
	Policy      string // "filter" or "threshold"
	MinScore    float64
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", ""),
			EmbeddingCache:      getEnv("EMBEDDING_CACHE", "memory"),
			EmbeddingCacheTTL:   getEnvAsInt("EMBEDDING_CACHE_TTL_MINUTES", 10),
			LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
			LLMModel:            getEnv("LLM_MODEL", "gpt-4.1-mini"),
			LLMBaseURL:          getEnv("LLM_BASE_URL", ""),
			LLMBreakerEnabled:   getEnvAsBool("LLM_BREAKER_ENABLED", true),
			ProviderTimeoutSecs: getEnvAsPositiveInt("PROVIDER_TIMEOUT_SECONDS", 30),
		},
		Search: SearchConfig{
			TopK:              getEnvAsInt("SEARCH_TOP_K", 20),
			MaxSelected:       getEnvAsInt("SEARCH_MAX_SELECTED", 5),
			TopN:              getEnvAsInt("SEARCH_TOP_N", 5),
			ProfileTextBudget: getEnvAsInt("PROFILE_TEXT_BUDGET", 800),
		},
		Referral: ReferralConfig{
			Policy:      getEnv("REFERRAL_POLICY", "filter"),
			MinScore:    getEnvAsFloat("REFERRAL_MIN_SCORE", 0.20),
			Concurrency: getEnvAsInt("REFERRAL_CONCURRENCY", 4),
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

func getEnvAsPositiveInt(key string, fallback int) int {
	if value := getEnvAsInt(key, fallback); value > 0 {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
