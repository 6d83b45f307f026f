package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/repository"
)

// ErrResultNotFound indicates the evaluation result does not exist.
var ErrResultNotFound = errors.New("evaluation result not found")

// RankingService assembles the contest ranking view and award-dependent
// artifacts. Awards are recomputed from the live result set on every read, so
// deleting or rescoring a submission immediately shifts every row below it.
type RankingService interface {
	Ranking(ctx context.Context) ([]dto.RankingEntry, error)
	Details(ctx context.Context, resultID uint) ([]dto.DetailResponse, error)
	SetSpecialAward(ctx context.Context, resultID uint, flagged bool) error
	Certificates(ctx context.Context, resultID uint) (dto.CertificateResponse, error)
}

type rankingService struct {
	results      repository.ResultRepository
	details      repository.DetailRepository
	awards       *AwardService
	certificates *CertificateService
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewRankingService constructs the ranking service.
func NewRankingService(
	results repository.ResultRepository,
	details repository.DetailRepository,
	awards *AwardService,
	certificates *CertificateService,
	logger zerolog.Logger,
) RankingService {
	return &rankingService{
		results:      results,
		details:      details,
		awards:       awards,
		certificates: certificates,
		logger:       logger.With().Str("component", "ranking_service").Logger(),
		tracer:       otel.Tracer("github.com/contestops/pitchscore-api/internal/service/ranking"),
	}
}

func (s *rankingService) Ranking(ctx context.Context) ([]dto.RankingEntry, error) {
	ctx, span := s.tracer.Start(ctx, "ranking.list")
	defer span.End()

	completed, err := s.results.ListCompleted(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	awardMap := s.awards.DetermineAwards(completed)
	ordered := s.awards.SortByScore(completed)
	span.SetAttributes(attribute.Int("ranking.entries", len(ordered)))

	entries := make([]dto.RankingEntry, 0, len(ordered))
	for idx, result := range ordered {
		entries = append(entries, dto.RankingEntry{
			Rank:       idx + 1,
			ResultID:   result.ID,
			SchoolName: result.SchoolName,
			ThemeTitle: result.ThemeTitle,
			TotalScore: result.TotalScore,
			MaxScore:   result.MaxScore,
			Awards:     awardMap[result.ID],
		})
	}
	return entries, nil
}

func (s *rankingService) Details(ctx context.Context, resultID uint) ([]dto.DetailResponse, error) {
	if _, err := s.results.GetByID(ctx, resultID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}

	details, err := s.details.ListByResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DetailResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, dto.NewDetailResponse(detail))
	}
	return out, nil
}

func (s *rankingService) SetSpecialAward(ctx context.Context, resultID uint, flagged bool) error {
	if err := s.results.SetSpecialJudgeAward(ctx, resultID, flagged); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResultNotFound
		}
		return err
	}
	s.logger.Info().Uint("result_id", resultID).Bool("flagged", flagged).Msg("special judge award updated")
	return nil
}

func (s *rankingService) Certificates(ctx context.Context, resultID uint) (dto.CertificateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ranking.certificates")
	defer span.End()

	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CertificateResponse{}, ErrResultNotFound
		}
		return dto.CertificateResponse{}, err
	}

	completed, err := s.results.ListCompleted(ctx)
	if err != nil {
		return dto.CertificateResponse{}, err
	}

	awardMap := s.awards.DetermineAwards(completed)
	awards := awardMap[result.ID]
	rendered := s.certificates.GenerateForResult(ctx, result, awards, completed)

	span.SetAttributes(attribute.Int("certificates.count", len(rendered)))

	return dto.CertificateResponse{
		ResultID:     result.ID,
		SchoolName:   result.SchoolName,
		Awards:       awards,
		Certificates: rendered,
	}, nil
}
