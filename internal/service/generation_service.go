package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"studium-server/internal/domain"
)

// Generation prompts never carry the whole document; long texts are bounded
// to keep token usage predictable across providers.
const maxPromptRunes = 8000

// Placeholder values that show up in .env templates. A key matching one of
// these counts as absent.
var placeholderKeys = map[string]struct{}{
	"":                            {},
	"your_api_key_here":           {},
	"your_anthropic_api_key_here": {},
	"your_openai_api_key_here":    {},
	"tu_api_key_aqui":             {},
	"changeme":                    {},
}

func validClaudeKey(key string) bool {
	if _, placeholder := placeholderKeys[strings.TrimSpace(key)]; placeholder {
		return false
	}
	return strings.HasPrefix(key, "sk-ant-")
}

func validOpenAIKey(key string) bool {
	if _, placeholder := placeholderKeys[strings.TrimSpace(key)]; placeholder {
		return false
	}
	// Anthropic keys share the sk- prefix; don't let one pass as OpenAI's.
	return strings.HasPrefix(key, "sk-") && !strings.HasPrefix(key, "sk-ant-")
}

// generationService orchestrates prompt rendering, provider failover and
// response validation. Providers are tried in priority order; the first
// valid response wins. Parse failures count as provider failures so a
// malformed response from the primary still fails over to the secondary.
type generationService struct {
	providers       []domain.Provider
	prompts         *PromptLibrary
	validator       *ResponseValidator
	logger          domain.Logger
	defaultLanguage string
	primary         string
	timeout         time.Duration
	maxFlashcards   int
	maxQuestions    int
	claudeOK        bool
	openAIOK        bool
}

// NewGenerationService builds the provider chain from configuration. The
// primary service goes first; any other available provider follows as
// fallback. Providers without valid credentials are excluded entirely.
func NewGenerationService(cfg domain.Config, logger domain.Logger) (domain.GenerationService, error) {
	prompts, err := NewPromptLibrary()
	if err != nil {
		return nil, err
	}
	validator, err := NewResponseValidator()
	if err != nil {
		return nil, err
	}

	claudeOK := validClaudeKey(cfg.GetAnthropicAPIKey())
	openAIOK := validOpenAIKey(cfg.GetOpenAIAPIKey())

	available := map[string]domain.Provider{}
	if claudeOK {
		available[domain.ProviderClaude] = NewClaudeProvider(
			cfg.GetAnthropicAPIKey(), cfg.GetClaudeModel(),
			cfg.GetClaudeMaxTokens(), cfg.GetClaudeTemperature())
	}
	if openAIOK {
		available[domain.ProviderOpenAI] = NewOpenAIProvider(
			cfg.GetOpenAIAPIKey(), cfg.GetOpenAIModel(),
			cfg.GetOpenAIMaxTokens(), cfg.GetOpenAITemperature())
	}

	var providers []domain.Provider
	for _, name := range priorityOrder(cfg.GetPrimaryAIService()) {
		if p, ok := available[name]; ok {
			providers = append(providers, p)
		}
	}

	svc := &generationService{
		providers:       providers,
		prompts:         prompts,
		validator:       validator,
		logger:          logger,
		defaultLanguage: cfg.GetDefaultLanguage(),
		primary:         cfg.GetPrimaryAIService(),
		timeout:         cfg.GetMaxProcessingTime(),
		maxFlashcards:   cfg.GetMaxFlashcards(),
		maxQuestions:    cfg.GetMaxTriviaQuestions(),
		claudeOK:        claudeOK,
		openAIOK:        openAIOK,
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info("AI providers configured", "priority", strings.Join(names, ","))
	return svc, nil
}

// NewGenerationServiceWithProviders wires an explicit provider chain. Used
// by tests and by callers that manage provider construction themselves.
func NewGenerationServiceWithProviders(providers []domain.Provider, cfg domain.Config, logger domain.Logger) (*generationService, error) {
	prompts, err := NewPromptLibrary()
	if err != nil {
		return nil, err
	}
	validator, err := NewResponseValidator()
	if err != nil {
		return nil, err
	}
	return &generationService{
		providers:       providers,
		prompts:         prompts,
		validator:       validator,
		logger:          logger,
		defaultLanguage: cfg.GetDefaultLanguage(),
		primary:         cfg.GetPrimaryAIService(),
		timeout:         cfg.GetMaxProcessingTime(),
		maxFlashcards:   cfg.GetMaxFlashcards(),
		maxQuestions:    cfg.GetMaxTriviaQuestions(),
	}, nil
}

func priorityOrder(primary string) []string {
	if primary == domain.ProviderOpenAI {
		return []string{domain.ProviderOpenAI, domain.ProviderClaude}
	}
	return []string{domain.ProviderClaude, domain.ProviderOpenAI}
}

func (s *generationService) Status() domain.AIStatus {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return domain.AIStatus{
		ClaudeAvailable: s.claudeOK,
		OpenAIAvailable: s.openAIOK,
		PrimaryService:  s.primary,
		ServicePriority: names,
		DefaultLanguage: s.defaultLanguage,
	}
}

func (s *generationService) normalize(req domain.GenerationRequest) domain.GenerationRequest {
	switch req.Language {
	case domain.LanguageSpanish, domain.LanguageEnglish:
	default:
		req.Language = s.defaultLanguage
		if req.Language != domain.LanguageEnglish {
			req.Language = domain.LanguageSpanish
		}
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	switch req.ActivityType {
	case domain.ActivityFlashcard:
		if req.Count > s.maxFlashcards {
			req.Count = s.maxFlashcards
		}
	case domain.ActivityMultipleChoice, domain.ActivityTrueFalse:
		if req.Count > s.maxQuestions {
			req.Count = s.maxQuestions
		}
	}
	req.Text = BoundText(CleanText(req.Text), maxPromptRunes)
	return req
}

// Generate runs the request through the provider chain. The prompt is
// rendered once and reused for every attempt; each attempt gets its own
// timeout so a stalled primary cannot eat the fallback's budget.
func (s *generationService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	if len(s.providers) == 0 {
		return nil, domain.ErrNoProviders
	}
	req = s.normalize(req)

	prompt, err := s.prompts.ActivityPrompt(req)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var attempts []domain.ProviderAttempt
	for idx, provider := range s.providers {
		activities, err := s.attempt(ctx, provider, prompt, req)
		if err != nil {
			attempts = append(attempts, attemptRecord(provider.Name(), err))
			s.logger.Warn("provider attempt failed",
				"provider", provider.Name(),
				"activity_type", string(req.ActivityType),
				"error", err.Error())
			continue
		}
		return &domain.GenerationResult{
			ActivityType:   req.ActivityType,
			Count:          len(activities),
			Activities:     activities,
			Provider:       provider.Name(),
			UsedFallback:   idx > 0,
			Language:       req.Language,
			ProcessingTime: time.Since(started).Seconds(),
		}, nil
	}
	return nil, &domain.AllProvidersExhaustedError{Attempts: attempts}
}

func (s *generationService) attempt(ctx context.Context, provider domain.Provider, prompt string, req domain.GenerationRequest) ([]any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := provider.Invoke(attemptCtx, prompt)
	if err != nil {
		return nil, err
	}
	activities, err := s.validator.ParseActivities(req.ActivityType, raw, req.Count)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider: provider.Name(),
			Kind:     domain.ResponseParseError,
			Err:      err,
		}
	}
	return activities, nil
}

// RunPrompt exposes the failover chain for callers that own their prompt and
// parsing, such as study plan generation.
func (s *generationService) RunPrompt(ctx context.Context, prompt string) (string, string, error) {
	if len(s.providers) == 0 {
		return "", "", domain.ErrNoProviders
	}
	var attempts []domain.ProviderAttempt
	for _, provider := range s.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		raw, err := provider.Invoke(attemptCtx, prompt)
		cancel()
		if err != nil {
			attempts = append(attempts, attemptRecord(provider.Name(), err))
			s.logger.Warn("provider attempt failed", "provider", provider.Name(), "error", err.Error())
			continue
		}
		return raw, provider.Name(), nil
	}
	return "", "", &domain.AllProvidersExhaustedError{Attempts: attempts}
}

func attemptRecord(provider string, err error) domain.ProviderAttempt {
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return domain.ProviderAttempt{Provider: provider, Kind: perr.Kind, Reason: perr.Err.Error()}
	}
	return domain.ProviderAttempt{Provider: provider, Kind: domain.ProviderTransportError, Reason: err.Error()}
}
