package service

import (
	"context"
	"time"

	"studium-server/internal/domain"
)

// testLogger discards everything.
type testLogger struct{}

func (testLogger) Info(msg string, fields ...interface{})             {}
func (testLogger) Error(msg string, err error, fields ...interface{}) {}
func (testLogger) Debug(msg string, fields ...interface{})            {}
func (testLogger) Warn(msg string, fields ...interface{})             {}

// testConfig satisfies domain.Config with sensible test defaults.
type testConfig struct {
	primaryService  string
	defaultLanguage string
	maxFlashcards   int
	maxQuestions    int
	processingTime  time.Duration
	uploadPath      string
	maxFileSize     int64
}

func newTestConfig() *testConfig {
	return &testConfig{
		primaryService:  domain.ProviderClaude,
		defaultLanguage: domain.LanguageSpanish,
		maxFlashcards:   10,
		maxQuestions:    10,
		processingTime:  5 * time.Second,
		uploadPath:      "uploads",
		maxFileSize:     10 * 1024 * 1024,
	}
}

func (c *testConfig) GetServerPort() string             { return "8080" }
func (c *testConfig) GetLogLevel() string               { return "error" }
func (c *testConfig) GetUploadPath() string             { return c.uploadPath }
func (c *testConfig) GetMaxFileSize() int64             { return c.maxFileSize }
func (c *testConfig) GetAnthropicAPIKey() string        { return "" }
func (c *testConfig) GetClaudeModel() string            { return "claude-sonnet-4-20250514" }
func (c *testConfig) GetClaudeMaxTokens() int           { return 1000 }
func (c *testConfig) GetClaudeTemperature() float32     { return 0.7 }
func (c *testConfig) GetOpenAIAPIKey() string           { return "" }
func (c *testConfig) GetOpenAIModel() string            { return "gpt-4o-mini" }
func (c *testConfig) GetOpenAIMaxTokens() int           { return 1000 }
func (c *testConfig) GetOpenAITemperature() float32     { return 0.7 }
func (c *testConfig) GetPrimaryAIService() string       { return c.primaryService }
func (c *testConfig) GetDefaultLanguage() string        { return c.defaultLanguage }
func (c *testConfig) GetChunkSize() int                 { return 1000 }
func (c *testConfig) GetChunkOverlap() int              { return 200 }
func (c *testConfig) GetMaxProcessingTime() time.Duration { return c.processingTime }
func (c *testConfig) GetMaxFlashcards() int             { return c.maxFlashcards }
func (c *testConfig) GetMaxTriviaQuestions() int        { return c.maxQuestions }
func (c *testConfig) GetOCRLanguages() []string         { return []string{"spa", "eng"} }
func (c *testConfig) GetExtractionWorkers() int         { return 1 }

// fakeProvider returns a canned response or a canned error, recording how
// many times it was invoked.
type fakeProvider struct {
	name     string
	response string
	err      error
	calls    int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

// fakeOCR returns fixed text and counts invocations.
type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (o *fakeOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	o.calls++
	if o.err != nil {
		return "", o.err
	}
	return o.text, nil
}
