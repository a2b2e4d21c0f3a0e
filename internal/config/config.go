package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Services ServicesConfig
	Worker   WorkerConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	HubLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string // empty disables auth
	SessionStore       string // "postgres" | "memory"
	LockBackend        string // "local" | "redis"
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string // silent | error | warn | info
}

type APIKeys struct {
	OpenAI        string
	OpenAIBaseURL string
	GoogleGemini  string
}

type AIConfig struct {
	LLMProvider       string // "openai" | "ollama" | "gemini"
	LLMModel          string
	OllamaBaseURL     string
	GenerationTimeout time.Duration
}

// ServicesConfig holds the addresses of the collaborating services.
type ServicesConfig struct {
	AdaptiveEngineURL   string
	EvaluationTimeout   time.Duration
	CompanyDirectoryURL string
	DirectoryTimeout    time.Duration
	ContextTimeout      time.Duration // per context section lookup
	CompanyID           string        // fixed tenant; skips the directory lookup
}

type WorkerConfig struct {
	EvaluationTopic string
	MaxConcurrent   int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8004"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/interview_agent.log"),
			HubLogFilePath:     getEnv("HUB_LOG_FILE_PATH", "logs/interview_hub.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			SessionStore:       getEnv("SESSION_STORE", "postgres"),
			LockBackend:        getEnv("LOCK_BACKEND", "local"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Keys: APIKeys{
			OpenAI:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			GoogleGemini:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GenerationTimeout: getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Services: ServicesConfig{
			AdaptiveEngineURL:   getEnv("ADAPTIVE_ENGINE_URL", "http://localhost:8005/adaptive/evaluate"),
			EvaluationTimeout:   getEnvAsDuration("EVALUATION_TIMEOUT", 30*time.Second),
			CompanyDirectoryURL: getEnv("COMPANY_DIRECTORY_URL", "http://localhost:8001/company_profiles"),
			DirectoryTimeout:    getEnvAsDuration("COMPANY_DIRECTORY_TIMEOUT", 10*time.Second),
			ContextTimeout:      getEnvAsDuration("CONTEXT_TIMEOUT", 5*time.Second),
			CompanyID:           getEnv("COMPANY_ID", ""),
		},
		Worker: WorkerConfig{
			EvaluationTopic: getEnv("EVALUATION_TOPIC_NAME", "EVALUATE_INTERVIEW_ANSWER"),
			MaxConcurrent:   getEnvAsInt("EVALUATION_MAX_CONCURRENT", 8),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
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

// getEnvAsDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
