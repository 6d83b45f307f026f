package repository

import (
	"context"
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/store"
)

// SubmissionRepository defines data operations for contest submissions.
// Read methods project the owning school's name onto each record; the
// projection is never written back to storage.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	List(ctx context.Context) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type submissionRepository struct {
	store *store.Store
	now   func() time.Time
}

// NewSubmissionRepository instantiates the repository over the JSON store.
func NewSubmissionRepository(s *store.Store) SubmissionRepository {
	return &submissionRepository{store: s, now: time.Now}
}

func (r *submissionRepository) load() ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.store.Load(store.SubmissionsFile, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) schoolNames() (map[uint]string, error) {
	var schools []models.School
	if err := r.store.Load(store.SchoolsFile, &schools); err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(schools))
	for _, s := range schools {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (r *submissionRepository) Create(_ context.Context, submission *models.Submission) error {
	submissions, err := r.load()
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(submissions))
	for _, s := range submissions {
		ids = append(ids, s.ID)
	}

	now := r.now()
	submission.ID = store.NextID(ids)
	submission.Status = models.SubmissionStatusPending
	submission.SubmittedAt = now
	submission.CreatedAt = now
	submission.UpdatedAt = now

	stored := *submission
	stored.SchoolName = ""
	submissions = append(submissions, stored)
	return r.store.Save(store.SubmissionsFile, submissions)
}

func (r *submissionRepository) GetByID(_ context.Context, id uint) (models.Submission, error) {
	submissions, err := r.load()
	if err != nil {
		return models.Submission{}, err
	}
	for _, s := range submissions {
		if s.ID == id {
			names, err := r.schoolNames()
			if err != nil {
				return models.Submission{}, err
			}
			s.SchoolName = names[s.SchoolID]
			return s, nil
		}
	}
	return models.Submission{}, ErrNotFound
}

func (r *submissionRepository) List(_ context.Context) ([]models.Submission, error) {
	submissions, err := r.load()
	if err != nil {
		return nil, err
	}
	names, err := r.schoolNames()
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		submissions[i].SchoolName = names[submissions[i].SchoolID]
	}
	return submissions, nil
}

func (r *submissionRepository) UpdateStatus(_ context.Context, id uint, status string) error {
	submissions, err := r.load()
	if err != nil {
		return err
	}
	found := false
	for i := range submissions {
		if submissions[i].ID == id {
			submissions[i].Status = status
			submissions[i].UpdatedAt = r.now()
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.store.Save(store.SubmissionsFile, submissions)
}
