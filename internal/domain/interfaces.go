package domain

import (
	"context"
	"time"
)

// Config provides application configuration, resolved once at startup and
// read-only afterwards.
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetUploadPath() string
	GetMaxFileSize() int64

	GetAnthropicAPIKey() string
	GetClaudeModel() string
	GetClaudeMaxTokens() int
	GetClaudeTemperature() float32

	GetOpenAIAPIKey() string
	GetOpenAIModel() string
	GetOpenAIMaxTokens() int
	GetOpenAITemperature() float32

	GetPrimaryAIService() string
	GetDefaultLanguage() string

	GetChunkSize() int
	GetChunkOverlap() int
	GetMaxProcessingTime() time.Duration
	GetMaxFlashcards() int
	GetMaxTriviaQuestions() int

	GetOCRLanguages() []string
	GetExtractionWorkers() int
}

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// DocumentStore is the in-process registry of documents. Implementations
// must serialize writes per document identifier: at most one extraction is
// in flight for a given document at any time.
type DocumentStore interface {
	Put(doc *Document) error
	Get(id string) (*Document, error)
	List() []*Document
	Delete(id string) error

	// SetProcessing atomically transitions a document into processing.
	// Returns ErrAlreadyProcessing if an extraction is in flight and
	// ErrNotFound if the id is unknown. Re-processing from a terminal
	// state is permitted and reverts the document to processing.
	SetProcessing(id string) error

	// Complete and Fail finish the single in-flight extraction attempt.
	Complete(id string, text string, wordCount int) error
	Fail(id string, reason string) error
}

// OCREngine converts image bytes into recognized text. It is a capability
// interface so backends can be substituted (or mocked in tests).
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TextExtractor produces plain text from an uploaded file.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType MediaType) (string, error)
}

// GenerationService orchestrates provider selection, prompting, parsing and
// failover for study-content generation.
type GenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
	Status() AIStatus
}
