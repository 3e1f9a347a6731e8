package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Extraction and store errors. Handlers map these onto HTTP statuses.
var (
	ErrUnsupportedFormat = errors.New("unsupported or undetected media type")
	ErrCorruptInput      = errors.New("file is unreadable or corrupt")
	ErrExtractionFailed  = errors.New("text extraction failed")
	ErrEmptyDocument     = errors.New("no text could be extracted from the document")
	ErrNotFound          = errors.New("document not found")
	ErrAlreadyProcessing = errors.New("document is already being processed")
	ErrNotProcessed      = errors.New("document processing not completed")
	ErrNoProviders       = errors.New("no AI providers configured")
)

// ProviderErrorKind classifies why a single provider attempt failed. All
// kinds are equivalent for failover purposes; the distinction is kept for
// diagnostics only.
type ProviderErrorKind string

const (
	ProviderTimeout        ProviderErrorKind = "timeout"
	ProviderAuthError      ProviderErrorKind = "auth"
	ProviderTransportError ProviderErrorKind = "transport"
	ResponseParseError     ProviderErrorKind = "parse"
)

// ProviderError records the failure of one provider attempt.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ProviderAttempt is the JSON-safe record of a failed attempt, surfaced to
// callers inside an exhaustion error. It never carries credentials.
type ProviderAttempt struct {
	Provider string            `json:"provider"`
	Kind     ProviderErrorKind `json:"kind"`
	Reason   string            `json:"reason"`
}

// AllProvidersExhaustedError is the only generation-path error surfaced to
// the end user: every provider in the ordered list failed.
type AllProvidersExhaustedError struct {
	Attempts []ProviderAttempt
}

func (e *AllProvidersExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Provider, a.Kind))
	}
	return "all AI providers failed: " + strings.Join(parts, ", ")
}
