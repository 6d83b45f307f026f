package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	scoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pitchscore",
		Subsystem: "ai",
		Name:      "criterion_duration_seconds",
		Help:      "Duration of per-criterion scoring requests",
	}, []string{"model"})

	scoringFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchscore",
		Subsystem: "ai",
		Name:      "criterion_failures_total",
		Help:      "Number of failed per-criterion scoring requests",
	}, []string{"model"})
)

// chatCompleter is the slice of the OpenAI client both scorers depend on.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig defines configuration options for the OpenAI criterion scorer.
// MaxContentChars and Temperature fall back to package defaults when zero.
type OpenAIConfig struct {
	APIKey          string
	Model           string
	MaxTokens       int
	MaxContentChars int
	Temperature     float32
	Logger          zerolog.Logger
}

// OpenAIScorer implements CriterionScorer against the OpenAI chat completion API.
type OpenAIScorer struct {
	client chatCompleter
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIScorer builds a scorer using the provided configuration.
func NewOpenAIScorer(cfg OpenAIConfig) (*OpenAIScorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
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

	client := openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey))

	return &OpenAIScorer{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/contestops/pitchscore-api/pkg/ai/openai"),
		logger: logger,
	}, nil
}

// Model returns the label of the configured backend model.
func (s *OpenAIScorer) Model() string {
	return s.cfg.Model
}

// ScoreCriterion sends one rubric prompt to OpenAI and parses the verdict.
func (s *OpenAIScorer) ScoreCriterion(parent context.Context, content string, criterionID int) (Judgement, error) {
	ctx, span := s.tracer.Start(parent, "openai.score_criterion", trace.WithAttributes(
		attribute.String("model", s.cfg.Model),
		attribute.Int("criterion_id", criterionID),
	))
	defer span.End()

	prompt, err := buildPrompt(criterionID, truncateContent(content, s.cfg.MaxContentChars))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Judgement{}, err
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	scoringDuration.WithLabelValues(s.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		scoringFailures.WithLabelValues(s.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Judgement{}, fmt.Errorf("openai score criterion %d: %w", criterionID, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		scoringFailures.WithLabelValues(s.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Judgement{}, err
	}

	judged := parseJudgement(strings.TrimSpace(resp.Choices[0].Message.Content))
	span.SetAttributes(attribute.Int("criterion_score", judged.Score))
	return judged, nil
}
