package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/observability"
	"github.com/contestops/pitchscore-api/internal/repository"
	"github.com/contestops/pitchscore-api/pkg/ai"
	"github.com/contestops/pitchscore-api/pkg/extract"
)

// ErrSubmissionNotFound indicates the submission does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrNoFiles indicates the submission has no registered files to score.
var ErrNoFiles = errors.New("submission has no uploaded files")

// ErrEmptyExtractedText indicates no text could be extracted from any file.
var ErrEmptyExtractedText = errors.New("no text could be extracted from the submission files")

// ScoringService runs the six-criterion scoring pass for a submission.
type ScoringService interface {
	// Score runs a fresh scoring pass, always creating a new result.
	Score(ctx context.Context, submissionID uint) (dto.ScoreResponse, error)
	// Rescore re-runs the pass, overwriting the latest completed result's
	// details in place when one exists.
	Rescore(ctx context.Context, submissionID uint) (dto.ScoreResponse, error)
}

type scoringService struct {
	submissions repository.SubmissionRepository
	files       repository.SubmissionFileRepository
	results     repository.ResultRepository
	details     repository.DetailRepository
	manager     *ai.Manager
	extractor   extract.TextExtractor
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewScoringService constructs the scoring orchestrator.
func NewScoringService(
	submissions repository.SubmissionRepository,
	files repository.SubmissionFileRepository,
	results repository.ResultRepository,
	details repository.DetailRepository,
	manager *ai.Manager,
	extractor extract.TextExtractor,
	logger zerolog.Logger,
) ScoringService {
	return &scoringService{
		submissions: submissions,
		files:       files,
		results:     results,
		details:     details,
		manager:     manager,
		extractor:   extractor,
		logger:      logger.With().Str("component", "scoring_service").Logger(),
		tracer:      otel.Tracer("github.com/contestops/pitchscore-api/internal/service/scoring"),
	}
}

func (s *scoringService) Score(ctx context.Context, submissionID uint) (dto.ScoreResponse, error) {
	return s.run(ctx, submissionID, false)
}

func (s *scoringService) Rescore(ctx context.Context, submissionID uint) (dto.ScoreResponse, error) {
	return s.run(ctx, submissionID, true)
}

func (s *scoringService) run(parent context.Context, submissionID uint, rescore bool) (dto.ScoreResponse, error) {
	ctx, span := s.tracer.Start(parent, "scoring.run", trace.WithAttributes(
		attribute.Int64("scoring.submission_id", int64(submissionID)),
		attribute.Bool("scoring.rescore", rescore),
	))
	defer span.End()

	// Credential problems block the whole pass before any criterion runs.
	scorer, err := s.manager.Scorer()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider_not_configured")
		return dto.ScoreResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ScoreResponse{}, ErrSubmissionNotFound
		}
		return dto.ScoreResponse{}, err
	}

	content, err := s.extractContent(ctx, submissionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction_failed")
		return dto.ScoreResponse{}, err
	}

	resultID, overwritten, err := s.targetResult(ctx, submissionID, rescore, scorer.Model())
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	span.SetAttributes(
		attribute.Int64("scoring.result_id", int64(resultID)),
		attribute.Bool("scoring.overwritten", overwritten),
	)

	totalScore := s.scoreAllCriteria(ctx, scorer, resultID, content)

	if err := s.results.Update(ctx, resultID, totalScore, models.EvaluationStatusCompleted, ""); err != nil {
		return dto.ScoreResponse{}, err
	}
	if err := s.submissions.UpdateStatus(ctx, submissionID, models.SubmissionStatusScored); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submissionID).Msg("failed to mark submission scored")
	}

	details, err := s.details.ListByResult(ctx, resultID)
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	observability.ScoringPasses().WithLabelValues(passLabel(overwritten)).Inc()
	s.logger.Info().
		Uint("submission_id", submissionID).
		Uint("result_id", resultID).
		Int("total_score", totalScore).
		Bool("overwritten", overwritten).
		Str("school", submission.SchoolName).
		Msg("scoring pass completed")

	return dto.NewScoreResponse(resultID, totalScore, overwritten, details), nil
}

// extractContent concatenates the text of every registered file. Individual
// extraction failures are tolerated; an entirely empty outcome is not.
func (s *scoringService) extractContent(ctx context.Context, submissionID uint) (string, error) {
	files, err := s.files.ListBySubmission(ctx, submissionID)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoFiles
	}

	sources := make([]extract.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, extract.Source{Name: f.FileName, Path: f.FilePath})
	}

	content := extract.Combine(s.extractor, sources)
	if content == "" {
		return "", ErrEmptyExtractedText
	}
	return content, nil
}

// targetResult picks the result a pass writes into. Rescoring reuses the most
// recently evaluated completed result for the submission and clears its
// details first; without one it falls back to creating a fresh result.
func (s *scoringService) targetResult(ctx context.Context, submissionID uint, rescore bool, model string) (uint, bool, error) {
	if rescore {
		latest, err := s.results.LatestCompletedBySubmission(ctx, submissionID)
		switch {
		case err == nil:
			if err := s.details.DeleteByResult(ctx, latest.ID); err != nil {
				return 0, false, err
			}
			return latest.ID, true, nil
		case errors.Is(err, repository.ErrNotFound):
			// No completed lineage yet; behave exactly like a first scoring.
		default:
			return 0, false, err
		}
	}

	result := models.EvaluationResult{SubmissionID: submissionID, AIModel: model}
	if err := s.results.Create(ctx, &result); err != nil {
		return 0, false, err
	}
	return result.ID, false, nil
}

// scoreAllCriteria judges every rubric criterion in display order. A failed
// call records a zero-score detail carrying the error text; every criterion
// therefore yields exactly one detail and the pass never aborts part way.
func (s *scoringService) scoreAllCriteria(ctx context.Context, scorer ai.CriterionScorer, resultID uint, content string) int {
	totalScore := 0
	for _, criterion := range models.Criteria() {
		judged, err := scorer.ScoreCriterion(ctx, content, criterion.ID)
		if err != nil {
			s.logger.Warn().Err(err).
				Uint("result_id", resultID).
				Int("criterion_id", criterion.ID).
				Msg("criterion scoring failed")
			judged = ai.Judgement{Score: 0, Reason: fmt.Sprintf("scoring error: %v", err)}
		}

		detail := models.EvaluationDetail{
			EvaluationResultID: resultID,
			CriterionID:        criterion.ID,
			Score:              judged.Score,
			Reason:             judged.Reason,
		}
		if createErr := s.details.Create(ctx, &detail); createErr != nil {
			s.logger.Error().Err(createErr).
				Uint("result_id", resultID).
				Int("criterion_id", criterion.ID).
				Msg("failed to persist evaluation detail")
			continue
		}
		totalScore += judged.Score
	}
	return totalScore
}

func passLabel(overwritten bool) string {
	if overwritten {
		return "rescore"
	}
	return "score"
}
