package ai

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Manager holds the currently configured criterion scorer. Credentials arrive
// either from the process environment at startup or from an organizer-supplied
// key during a session; the manager is passed explicitly to consumers rather
// than living in package-level state.
type Manager struct {
	mu     sync.RWMutex
	scorer CriterionScorer

	provider Provider
	opts     ScorerOptions
	logger   zerolog.Logger
}

// ScorerOptions carries the tuning knobs applied to every scorer the manager
// builds. Zero values fall back to package defaults.
type ScorerOptions struct {
	MaxContentChars int
	Temperature     float32
}

// NewManager constructs an unconfigured manager.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{logger: logger.With().Str("component", "ai_manager").Logger()}
}

// SetOptions records the tuning applied to scorers built by later Configure
// calls. It does not rebuild an already installed scorer.
func (m *Manager) SetOptions(opts ScorerOptions) {
	m.mu.Lock()
	m.opts = opts
	m.mu.Unlock()
}

// Configure installs a scorer for the given credential. When provider is
// empty it is auto-detected from the key's lexical prefix; an explicit
// provider that contradicts the prefix fails with *ProviderMismatchError.
func (m *Manager) Configure(apiKey string, provider Provider) error {
	apiKey = strings.TrimSpace(apiKey)

	if provider == "" {
		provider = DetectProvider(apiKey)
	}
	if err := ValidateKey(apiKey, provider); err != nil {
		return err
	}

	m.mu.RLock()
	opts := m.opts
	m.mu.RUnlock()

	var scorer CriterionScorer
	var err error
	switch provider {
	case ProviderOpenAI:
		scorer, err = NewOpenAIScorer(OpenAIConfig{
			APIKey:          apiKey,
			MaxContentChars: opts.MaxContentChars,
			Temperature:     opts.Temperature,
			Logger:          m.logger,
		})
	case ProviderGemini:
		scorer, err = NewGeminiScorer(GeminiConfig{
			APIKey:          apiKey,
			MaxContentChars: opts.MaxContentChars,
			Temperature:     opts.Temperature,
			Logger:          m.logger,
		})
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.scorer = scorer
	m.provider = provider
	m.mu.Unlock()

	m.logger.Info().Str("provider", string(provider)).Msg("ai provider configured")
	return nil
}

// UseScorer installs a pre-built scorer directly, bypassing credential
// validation. Callers that construct their own CriterionScorer use this
// instead of Configure.
func (m *Manager) UseScorer(scorer CriterionScorer, provider Provider) {
	m.mu.Lock()
	m.scorer = scorer
	m.provider = provider
	m.mu.Unlock()
}

// FromEnv initialises the manager from OPENAI_API_KEY or GOOGLE_API_KEY when
// either is present. A missing environment credential is not an error.
func (m *Manager) FromEnv() error {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return m.Configure(key, ProviderOpenAI)
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return m.Configure(key, ProviderGemini)
	}
	return nil
}

// Configured reports whether a scorer is available.
func (m *Manager) Configured() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scorer != nil
}

// Provider returns the currently configured provider, empty when none.
func (m *Manager) Provider() Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.provider
}

// Scorer returns the active scorer, or ErrNotConfigured when no credential
// has been supplied.
func (m *Manager) Scorer() (CriterionScorer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.scorer == nil {
		return nil, ErrNotConfigured
	}
	return m.scorer, nil
}
