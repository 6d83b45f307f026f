package repository

import (
	"context"
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/store"
)

// SubmissionFileRepository tracks uploaded files per submission.
type SubmissionFileRepository interface {
	Create(ctx context.Context, file *models.SubmissionFile) error
	ListBySubmission(ctx context.Context, submissionID uint) ([]models.SubmissionFile, error)
}

type submissionFileRepository struct {
	store *store.Store
	now   func() time.Time
}

// NewSubmissionFileRepository instantiates the repository over the JSON store.
func NewSubmissionFileRepository(s *store.Store) SubmissionFileRepository {
	return &submissionFileRepository{store: s, now: time.Now}
}

func (r *submissionFileRepository) Create(_ context.Context, file *models.SubmissionFile) error {
	var files []models.SubmissionFile
	if err := r.store.Load(store.FilesFile, &files); err != nil {
		return err
	}

	ids := make([]uint, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}

	now := r.now()
	file.ID = store.NextID(ids)
	file.CreatedAt = now
	file.UpdatedAt = now

	files = append(files, *file)
	return r.store.Save(store.FilesFile, files)
}

func (r *submissionFileRepository) ListBySubmission(_ context.Context, submissionID uint) ([]models.SubmissionFile, error) {
	var files []models.SubmissionFile
	if err := r.store.Load(store.FilesFile, &files); err != nil {
		return nil, err
	}

	var matched []models.SubmissionFile
	for _, f := range files {
		if f.SubmissionID == submissionID {
			matched = append(matched, f)
		}
	}
	return matched, nil
}
