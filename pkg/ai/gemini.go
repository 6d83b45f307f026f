package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// geminiBaseURL is Google's OpenAI-compatible chat completion endpoint, which
// lets both backends share one client library.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// geminiModelPreference is the ranked list of model identifiers probed in
// order; Google retires names regularly, so the newest usable one wins.
var geminiModelPreference = []string{
	"gemini-2.0-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-1.0-pro",
}

// NoAvailableModelError reports that every candidate Gemini model rejected
// the call. Attempted preserves probe order; LastErr is the final rejection.
type NoAvailableModelError struct {
	Attempted []string
	LastErr   error
}

func (e *NoAvailableModelError) Error() string {
	return fmt.Sprintf("no available gemini model (attempted %s): %v", strings.Join(e.Attempted, ", "), e.LastErr)
}

func (e *NoAvailableModelError) Unwrap() error {
	return e.LastErr
}

// GeminiConfig defines configuration options for the Gemini criterion scorer.
// MaxContentChars and Temperature fall back to package defaults when zero.
type GeminiConfig struct {
	APIKey          string
	Models          []string
	MaxTokens       int
	MaxContentChars int
	Temperature     float32
	Logger          zerolog.Logger
}

// GeminiScorer implements CriterionScorer against the Gemini API.
type GeminiScorer struct {
	client chatCompleter
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger

	// model is pinned after the first successful probe.
	model string
}

// NewGeminiScorer builds a scorer using the provided configuration.
func NewGeminiScorer(cfg GeminiConfig) (*GeminiScorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if len(cfg.Models) == 0 {
		cfg.Models = append([]string(nil), geminiModelPreference...)
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = defaultMaxContentChars
	}

	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = geminiBaseURL

	return &GeminiScorer{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/contestops/pitchscore-api/pkg/ai/gemini"),
		logger: logger,
	}, nil
}

// Model returns the pinned backend model, or the top preference before the
// first successful call.
func (s *GeminiScorer) Model() string {
	if s.model != "" {
		return s.model
	}
	return s.cfg.Models[0]
}

// ScoreCriterion sends one rubric prompt to Gemini, probing the ranked model
// list until one accepts the call.
func (s *GeminiScorer) ScoreCriterion(parent context.Context, content string, criterionID int) (Judgement, error) {
	ctx, span := s.tracer.Start(parent, "gemini.score_criterion", trace.WithAttributes(
		attribute.Int("criterion_id", criterionID),
	))
	defer span.End()

	prompt, err := buildPrompt(criterionID, truncateContent(content, s.cfg.MaxContentChars))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Judgement{}, err
	}

	candidates := s.cfg.Models
	if s.model != "" {
		candidates = []string{s.model}
	}

	var attempted []string
	var lastErr error
	for _, model := range candidates {
		attempted = append(attempted, model)

		start := time.Now()
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		scoringDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
		if err != nil {
			scoringFailures.WithLabelValues(model).Inc()
			s.logger.Warn().Err(err).Str("model", model).Msg("gemini model rejected scoring call")
			lastErr = err
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no choices returned from gemini model %s", model)
			scoringFailures.WithLabelValues(model).Inc()
			continue
		}

		s.model = model
		span.SetAttributes(attribute.String("model", model))
		judged := parseJudgement(strings.TrimSpace(resp.Choices[0].Message.Content))
		span.SetAttributes(attribute.Int("criterion_score", judged.Score))
		return judged, nil
	}

	err = &NoAvailableModelError{Attempted: attempted, LastErr: lastErr}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return Judgement{}, err
}
