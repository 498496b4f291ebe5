package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	Temperature     float64
	MaxRetries      int
	LLMTimeout      time.Duration
	RequestTimeout  time.Duration
	UserAgent       string
	ResumeIndexPath string
	OutputDir       string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenPath    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	return Config{
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		Temperature:     getEnvFloat("OPENAI_TEMPERATURE", 0.2),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		LLMTimeout:      time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 120)) * time.Second,
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		UserAgent:       getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		ResumeIndexPath: getEnv("RESUME_INDEX_PATH", "data/resumes/resume_index.json"),
		OutputDir:       getEnv("OUTPUT_DIR", "outputs"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleTokenPath:    getEnv("GOOGLE_TOKEN_PATH", "token.json"),
	}
}

// ValidateLLM checks that the configured provider has its credential set.
func (c Config) ValidateLLM() error {
	if c.LLMProvider == "openai" && strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "placeholder", "none":
		return "placeholder"
	default:
		return "openai"
	}
}
