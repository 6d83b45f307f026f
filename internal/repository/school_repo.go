package repository

import (
	"context"
	"errors"
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/store"
)

// ErrNotFound indicates the requested record does not exist in storage.
var ErrNotFound = errors.New("record not found")

// SchoolRepository defines data operations for participating schools.
type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id uint) (models.School, error)
	List(ctx context.Context) ([]models.School, error)
	Delete(ctx context.Context, id uint) error
}

type schoolRepository struct {
	store *store.Store
	now   func() time.Time
}

// NewSchoolRepository instantiates the repository over the JSON store.
func NewSchoolRepository(s *store.Store) SchoolRepository {
	return &schoolRepository{store: s, now: time.Now}
}

func (r *schoolRepository) load() ([]models.School, error) {
	var schools []models.School
	if err := r.store.Load(store.SchoolsFile, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *schoolRepository) Create(_ context.Context, school *models.School) error {
	schools, err := r.load()
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(schools))
	for _, s := range schools {
		ids = append(ids, s.ID)
	}

	now := r.now()
	school.ID = store.NextID(ids)
	school.CreatedAt = now
	school.UpdatedAt = now

	schools = append(schools, *school)
	return r.store.Save(store.SchoolsFile, schools)
}

func (r *schoolRepository) GetByID(_ context.Context, id uint) (models.School, error) {
	schools, err := r.load()
	if err != nil {
		return models.School{}, err
	}
	for _, s := range schools {
		if s.ID == id {
			return s, nil
		}
	}
	return models.School{}, ErrNotFound
}

func (r *schoolRepository) List(_ context.Context) ([]models.School, error) {
	return r.load()
}

func (r *schoolRepository) Delete(_ context.Context, id uint) error {
	schools, err := r.load()
	if err != nil {
		return err
	}

	kept := schools[:0]
	found := false
	for _, s := range schools {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return r.store.Save(store.SchoolsFile, kept)
}
