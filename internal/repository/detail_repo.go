package repository

import (
	"context"
	"sort"
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/store"
)

// DetailRepository defines data operations for per-criterion evaluation details.
type DetailRepository interface {
	Create(ctx context.Context, detail *models.EvaluationDetail) error
	ListByResult(ctx context.Context, resultID uint) ([]models.EvaluationDetail, error)
	DeleteByResult(ctx context.Context, resultID uint) error
}

type detailRepository struct {
	store *store.Store
	now   func() time.Time
}

// NewDetailRepository instantiates the repository over the JSON store.
func NewDetailRepository(s *store.Store) DetailRepository {
	return &detailRepository{store: s, now: time.Now}
}

func (r *detailRepository) load() ([]models.EvaluationDetail, error) {
	var details []models.EvaluationDetail
	if err := r.store.Load(store.EvaluationDetailsFile, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *detailRepository) Create(_ context.Context, detail *models.EvaluationDetail) error {
	details, err := r.load()
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
	}

	now := r.now()
	detail.ID = store.NextID(ids)
	detail.CreatedAt = now
	detail.UpdatedAt = now

	stored := *detail
	stored.CriterionName = ""
	stored.CriterionDescription = ""
	details = append(details, stored)
	return r.store.Save(store.EvaluationDetailsFile, details)
}

// ListByResult returns the result's details with criterion metadata projected,
// ordered by the catalog display order.
func (r *detailRepository) ListByResult(_ context.Context, resultID uint) ([]models.EvaluationDetail, error) {
	details, err := r.load()
	if err != nil {
		return nil, err
	}

	var matched []models.EvaluationDetail
	for _, d := range details {
		if d.EvaluationResultID != resultID {
			continue
		}
		if criterion, ok := models.CriterionByID(d.CriterionID); ok {
			d.CriterionName = criterion.Name
			d.CriterionDescription = criterion.Description
		}
		matched = append(matched, d)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return displayOrder(matched[i].CriterionID) < displayOrder(matched[j].CriterionID)
	})
	return matched, nil
}

func displayOrder(criterionID int) int {
	if criterion, ok := models.CriterionByID(criterionID); ok {
		return criterion.DisplayOrder
	}
	return 0
}

func (r *detailRepository) DeleteByResult(_ context.Context, resultID uint) error {
	details, err := r.load()
	if err != nil {
		return err
	}

	kept := details[:0]
	for _, d := range details {
		if d.EvaluationResultID != resultID {
			kept = append(kept, d)
		}
	}
	return r.store.Save(store.EvaluationDetailsFile, kept)
}
