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
	Ai       AIConfig
	Analysis AnalysisConfig
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
	SessionStore       string // "memory" or "redis"
	DataDir            string
	UploadDir          string
	ReportDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "qwen2.5", "llama3"
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIAPIKey  string
}

// AnalysisConfig points at the evidence analyzer fleet. Empty values keep
// the per-category defaults.
type AnalysisConfig struct {
	ContractURL   string
	PayslipURL    string
	AttendanceURL string
	InjuryURL     string
	RecordingURL  string
	ChatURL       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
			DataDir:            getEnv("DATA_DIR", "data"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			ReportDir:          getEnv("REPORT_DIR", "reports"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "LaborLawAssistant"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "qwen2.5"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		},
		Analysis: AnalysisConfig{
			ContractURL:   getEnv("ANALYZER_CONTRACT_URL", ""),
			PayslipURL:    getEnv("ANALYZER_PAYSLIP_URL", ""),
			AttendanceURL: getEnv("ANALYZER_ATTENDANCE_URL", ""),
			InjuryURL:     getEnv("ANALYZER_INJURY_URL", ""),
			RecordingURL:  getEnv("ANALYZER_RECORDING_URL", ""),
			ChatURL:       getEnv("ANALYZER_CHAT_URL", ""),
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
