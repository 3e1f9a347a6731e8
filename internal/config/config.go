package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"studium-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	LogLevel    string
	UploadPath  string
	MaxFileSize int64

	AnthropicAPIKey   string
	ClaudeModel       string
	ClaudeMaxTokens   int
	ClaudeTemperature float32

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float32

	PrimaryAIService string
	DefaultLanguage  string

	ChunkSize          int
	ChunkOverlap       int
	MaxProcessingTime  time.Duration
	MaxFlashcards      int
	MaxTriviaQuestions int

	OCRLanguages      []string
	ExtractionWorkers int
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		UploadPath:  getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024), // 10MB default

		AnthropicAPIKey:   getEnvOrDefault("ANTHROPIC_API_KEY", ""),
		ClaudeModel:       getEnvOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		ClaudeMaxTokens:   getEnvIntOrDefault("CLAUDE_MAX_TOKENS", 1000),
		ClaudeTemperature: getEnvFloat32OrDefault("CLAUDE_TEMPERATURE", 0.7),

		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIMaxTokens:   getEnvIntOrDefault("OPENAI_MAX_TOKENS", 1000),
		OpenAITemperature: getEnvFloat32OrDefault("OPENAI_TEMPERATURE", 0.7),

		PrimaryAIService: getEnvOrDefault("PRIMARY_AI_SERVICE", domain.ProviderClaude),
		DefaultLanguage:  getEnvOrDefault("DEFAULT_LANGUAGE", domain.LanguageSpanish),

		ChunkSize:          getEnvIntOrDefault("CHUNK_SIZE", 1000),
		ChunkOverlap:       getEnvIntOrDefault("CHUNK_OVERLAP", 200),
		MaxProcessingTime:  time.Duration(getEnvIntOrDefault("MAX_PROCESSING_TIME", 30)) * time.Second,
		MaxFlashcards:      getEnvIntOrDefault("MAX_FLASHCARDS", 10),
		MaxTriviaQuestions: getEnvIntOrDefault("MAX_TRIVIA_QUESTIONS", 10),

		OCRLanguages:      getEnvListOrDefault("OCR_LANGUAGES", []string{"spa", "eng"}),
		ExtractionWorkers: getEnvIntOrDefault("EXTRACTION_WORKERS", 2),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string { return c.ServerPort }

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string { return c.LogLevel }

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string { return c.UploadPath }

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 { return c.MaxFileSize }

// GetAnthropicAPIKey returns the Anthropic API key
func (c *AppConfig) GetAnthropicAPIKey() string { return c.AnthropicAPIKey }

// GetClaudeModel returns the Claude model name
func (c *AppConfig) GetClaudeModel() string { return c.ClaudeModel }

// GetClaudeMaxTokens returns the Claude completion token limit
func (c *AppConfig) GetClaudeMaxTokens() int { return c.ClaudeMaxTokens }

// GetClaudeTemperature returns the Claude sampling temperature
func (c *AppConfig) GetClaudeTemperature() float32 { return c.ClaudeTemperature }

// GetOpenAIAPIKey returns the OpenAI API key
func (c *AppConfig) GetOpenAIAPIKey() string { return c.OpenAIAPIKey }

// GetOpenAIModel returns the OpenAI model name
func (c *AppConfig) GetOpenAIModel() string { return c.OpenAIModel }

// GetOpenAIMaxTokens returns the OpenAI completion token limit
func (c *AppConfig) GetOpenAIMaxTokens() int { return c.OpenAIMaxTokens }

// GetOpenAITemperature returns the OpenAI sampling temperature
func (c *AppConfig) GetOpenAITemperature() float32 { return c.OpenAITemperature }

// GetPrimaryAIService returns the provider tried first during generation
func (c *AppConfig) GetPrimaryAIService() string { return c.PrimaryAIService }

// GetDefaultLanguage returns the default content language
func (c *AppConfig) GetDefaultLanguage() string { return c.DefaultLanguage }

// GetChunkSize returns the text chunk size in characters
func (c *AppConfig) GetChunkSize() int { return c.ChunkSize }

// GetChunkOverlap returns the overlap between consecutive chunks
func (c *AppConfig) GetChunkOverlap() int { return c.ChunkOverlap }

// GetMaxProcessingTime returns the per-provider-call timeout bound
func (c *AppConfig) GetMaxProcessingTime() time.Duration { return c.MaxProcessingTime }

// GetMaxFlashcards returns the upper clamp on requested flashcard counts
func (c *AppConfig) GetMaxFlashcards() int { return c.MaxFlashcards }

// GetMaxTriviaQuestions returns the upper clamp on requested question counts
func (c *AppConfig) GetMaxTriviaQuestions() int { return c.MaxTriviaQuestions }

// GetOCRLanguages returns the tesseract language codes
func (c *AppConfig) GetOCRLanguages() []string { return c.OCRLanguages }

// GetExtractionWorkers returns the background extraction worker count
func (c *AppConfig) GetExtractionWorkers() int { return c.ExtractionWorkers }

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat32OrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatValue)
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
