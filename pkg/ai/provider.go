package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Provider identifies a supported LLM backend.
type Provider string

const (
	// ProviderOpenAI selects the OpenAI chat completion backend.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini selects the Google Gemini backend.
	ProviderGemini Provider = "gemini"
)

const (
	openAIKeyPrefix = "sk-"
	geminiKeyPrefix = "AIzaSy"
)

// ErrNotConfigured indicates no credential has been supplied when a scoring
// call was attempted.
var ErrNotConfigured = errors.New("ai provider is not configured")

// ErrUnsupportedProvider indicates a provider name outside the supported set.
var ErrUnsupportedProvider = errors.New("unsupported ai provider")

// ProviderMismatchError reports a credential whose lexical prefix contradicts
// the explicitly selected provider.
type ProviderMismatchError struct {
	Selected Provider
	Detected Provider
}

func (e *ProviderMismatchError) Error() string {
	return fmt.Sprintf("api key looks like a %s credential but provider %q was selected", e.Detected, e.Selected)
}

// DetectProvider infers the backend from the credential's lexical prefix.
// Unknown prefixes default to OpenAI for backwards compatibility.
func DetectProvider(apiKey string) Provider {
	key := strings.TrimSpace(apiKey)
	if strings.HasPrefix(key, geminiKeyPrefix) {
		return ProviderGemini
	}
	return ProviderOpenAI
}

// ValidateKey checks that an explicitly selected provider agrees with the
// credential's detected prefix.
func ValidateKey(apiKey string, selected Provider) error {
	key := strings.TrimSpace(apiKey)
	switch selected {
	case ProviderOpenAI:
		if strings.HasPrefix(key, geminiKeyPrefix) {
			return &ProviderMismatchError{Selected: selected, Detected: ProviderGemini}
		}
	case ProviderGemini:
		if !strings.HasPrefix(key, geminiKeyPrefix) {
			return &ProviderMismatchError{Selected: selected, Detected: ProviderOpenAI}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, selected)
	}
	return nil
}
