package handler

import (
	"context"
	"testing"
	"time"

	"studium-server/internal/domain"
	"studium-server/internal/repository"
	"studium-server/internal/service"
)

type mockLogger struct{}

func (mockLogger) Info(msg string, fields ...interface{})             {}
func (mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (mockLogger) Debug(msg string, fields ...interface{})            {}
func (mockLogger) Warn(msg string, fields ...interface{})             {}

type mockConfig struct {
	uploadPath  string
	maxFileSize int64
}

func (c *mockConfig) GetServerPort() string               { return "8080" }
func (c *mockConfig) GetLogLevel() string                 { return "error" }
func (c *mockConfig) GetUploadPath() string               { return c.uploadPath }
func (c *mockConfig) GetMaxFileSize() int64               { return c.maxFileSize }
func (c *mockConfig) GetAnthropicAPIKey() string          { return "" }
func (c *mockConfig) GetClaudeModel() string              { return "claude-sonnet-4-20250514" }
func (c *mockConfig) GetClaudeMaxTokens() int             { return 1000 }
func (c *mockConfig) GetClaudeTemperature() float32       { return 0.7 }
func (c *mockConfig) GetOpenAIAPIKey() string             { return "" }
func (c *mockConfig) GetOpenAIModel() string              { return "gpt-4o-mini" }
func (c *mockConfig) GetOpenAIMaxTokens() int             { return 1000 }
func (c *mockConfig) GetOpenAITemperature() float32       { return 0.7 }
func (c *mockConfig) GetPrimaryAIService() string         { return domain.ProviderClaude }
func (c *mockConfig) GetDefaultLanguage() string          { return domain.LanguageSpanish }
func (c *mockConfig) GetChunkSize() int                   { return 1000 }
func (c *mockConfig) GetChunkOverlap() int                { return 200 }
func (c *mockConfig) GetMaxProcessingTime() time.Duration { return 5 * time.Second }
func (c *mockConfig) GetMaxFlashcards() int               { return 10 }
func (c *mockConfig) GetMaxTriviaQuestions() int          { return 10 }
func (c *mockConfig) GetOCRLanguages() []string           { return []string{"spa", "eng"} }
func (c *mockConfig) GetExtractionWorkers() int           { return 1 }

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(ctx context.Context, data []byte, mediaType domain.MediaType) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type mockGenerationService struct {
	result *domain.GenerationResult
	err    error
	lastReq domain.GenerationRequest
}

func (m *mockGenerationService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGenerationService) Status() domain.AIStatus {
	return domain.AIStatus{
		ClaudeAvailable: true,
		PrimaryService:  domain.ProviderClaude,
		ServicePriority: []string{domain.ProviderClaude},
		DefaultLanguage: domain.LanguageSpanish,
	}
}

type mockStudyPlanService struct {
	plan *domain.StudyPlan
	err  error
}

func (m *mockStudyPlanService) GeneratePlan(ctx context.Context, text string, req domain.StudyPlanRequest) (*domain.StudyPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.plan, nil
}

// documentFixture wires a real store, document service and queue against a
// mock extractor, returning everything a handler test needs.
type documentFixture struct {
	store   *repository.InMemoryDocumentStore
	docs    *service.DocumentService
	queue   *service.ProcessingQueue
	handler *DocumentHandler
}

func newDocumentFixture(t *testing.T, extractor domain.TextExtractor) *documentFixture {
	t.Helper()
	cfg := &mockConfig{uploadPath: t.TempDir(), maxFileSize: 1024 * 1024}
	store := repository.NewInMemoryDocumentStore()
	docs := service.NewDocumentService(store, cfg, mockLogger{})
	queue := service.NewProcessingQueue(store, docs, extractor, cfg, mockLogger{})
	queue.Start(context.Background())
	t.Cleanup(queue.Stop)

	return &documentFixture{
		store:   store,
		docs:    docs,
		queue:   queue,
		handler: NewDocumentHandler(docs, store, queue, cfg, mockLogger{}),
	}
}

// minimalPDF is enough for content sniffing; extraction is mocked in tests.
var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
