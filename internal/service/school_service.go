package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/repository"
)

// ErrSchoolNotFound indicates the school does not exist.
var ErrSchoolNotFound = errors.New("school not found")

// SchoolService manages participating school registrations.
type SchoolService interface {
	Create(ctx context.Context, payload dto.SchoolCreateRequest) (dto.SchoolResponse, error)
	List(ctx context.Context) ([]dto.SchoolResponse, error)
	Get(ctx context.Context, id uint) (dto.SchoolResponse, error)
	Delete(ctx context.Context, id uint) error
}

type schoolService struct {
	repo      repository.SchoolRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo repository.SchoolRepository, validate *validator.Validate, logger zerolog.Logger) SchoolService {
	return &schoolService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) Create(ctx context.Context, payload dto.SchoolCreateRequest) (dto.SchoolResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SchoolResponse{}, err
	}

	school := models.School{
		Name:         payload.Name,
		Prefecture:   payload.Prefecture,
		ContactEmail: payload.ContactEmail,
		ContactName:  payload.ContactName,
	}
	if err := s.repo.Create(ctx, &school); err != nil {
		return dto.SchoolResponse{}, err
	}

	s.logger.Info().Uint("school_id", school.ID).Str("name", school.Name).Msg("school registered")
	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) List(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SchoolResponse, 0, len(schools))
	for _, school := range schools {
		out = append(out, dto.NewSchoolResponse(school))
	}
	return out, nil
}

func (s *schoolService) Get(ctx context.Context, id uint) (dto.SchoolResponse, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SchoolResponse{}, ErrSchoolNotFound
		}
		return dto.SchoolResponse{}, err
	}
	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSchoolNotFound
		}
		return err
	}
	s.logger.Info().Uint("school_id", id).Msg("school deleted")
	return nil
}
