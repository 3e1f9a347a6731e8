package domain

import "context"

// Provider names as exposed through configuration and the ai-status endpoint.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// ProviderConfig is the read-only configuration of a single LLM provider,
// resolved once at startup. Available is derived from credential presence.
type ProviderConfig struct {
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Available   bool    `json:"available"`
}

// Provider is the capability interface shared by all LLM backends: feed it a
// prompt, get raw model output back. Implementations must honor the context
// deadline and report failures as *ProviderError.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, prompt string) (string, error)
}

// PromptRunner runs an arbitrary prompt through the configured provider
// chain with failover, returning the raw output and the provider that
// produced it.
type PromptRunner interface {
	RunPrompt(ctx context.Context, prompt string) (raw string, provider string, err error)
}

// AIStatus reports which providers hold valid credentials and the resolved
// failover order.
type AIStatus struct {
	ClaudeAvailable bool     `json:"claude_available"`
	OpenAIAvailable bool     `json:"openai_available"`
	PrimaryService  string   `json:"primary_service"`
	ServicePriority []string `json:"service_priority"`
	DefaultLanguage string   `json:"default_language"`
}
