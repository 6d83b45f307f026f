package repository

import (
	"context"
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/store"
)

// ResultRepository defines data operations for evaluation results. Deleting a
// result cascades to its owned details.
type ResultRepository interface {
	Create(ctx context.Context, result *models.EvaluationResult) error
	Update(ctx context.Context, id uint, totalScore int, status, notes string) error
	GetByID(ctx context.Context, id uint) (models.EvaluationResult, error)
	ListAll(ctx context.Context) ([]models.EvaluationResult, error)
	ListCompleted(ctx context.Context) ([]models.EvaluationResult, error)
	LatestCompletedBySubmission(ctx context.Context, submissionID uint) (models.EvaluationResult, error)
	SetSpecialJudgeAward(ctx context.Context, id uint, flagged bool) error
	GetSpecialJudgeAward(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type resultRepository struct {
	store *store.Store
	now   func() time.Time
}

// NewResultRepository instantiates the repository over the JSON store.
func NewResultRepository(s *store.Store) ResultRepository {
	return &resultRepository{store: s, now: time.Now}
}

func (r *resultRepository) load() ([]models.EvaluationResult, error) {
	var results []models.EvaluationResult
	if err := r.store.Load(store.EvaluationResultsFile, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// project joins school name and theme title onto results at read time.
func (r *resultRepository) project(results []models.EvaluationResult) error {
	var submissions []models.Submission
	if err := r.store.Load(store.SubmissionsFile, &submissions); err != nil {
		return err
	}
	var schools []models.School
	if err := r.store.Load(store.SchoolsFile, &schools); err != nil {
		return err
	}

	schoolNames := make(map[uint]string, len(schools))
	for _, s := range schools {
		schoolNames[s.ID] = s.Name
	}
	bySubmission := make(map[uint]models.Submission, len(submissions))
	for _, s := range submissions {
		bySubmission[s.ID] = s
	}

	for i := range results {
		if sub, ok := bySubmission[results[i].SubmissionID]; ok {
			results[i].ThemeTitle = sub.ThemeTitle
			results[i].SchoolName = schoolNames[sub.SchoolID]
		}
	}
	return nil
}

func (r *resultRepository) Create(_ context.Context, result *models.EvaluationResult) error {
	results, err := r.load()
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(results))
	for _, res := range results {
		ids = append(ids, res.ID)
	}

	now := r.now()
	result.ID = store.NextID(ids)
	result.MaxScore = models.TotalMaxScore
	result.Status = models.EvaluationStatusProcessing
	result.EvaluatedAt = nil
	result.CreatedAt = now
	result.UpdatedAt = now

	stored := *result
	stored.SchoolName = ""
	stored.ThemeTitle = ""
	results = append(results, stored)
	return r.store.Save(store.EvaluationResultsFile, results)
}

func (r *resultRepository) Update(_ context.Context, id uint, totalScore int, status, notes string) error {
	results, err := r.load()
	if err != nil {
		return err
	}

	found := false
	now := r.now()
	for i := range results {
		if results[i].ID == id {
			results[i].TotalScore = totalScore
			results[i].Status = status
			results[i].Notes = notes
			results[i].EvaluatedAt = &now
			results[i].UpdatedAt = now
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.store.Save(store.EvaluationResultsFile, results)
}

func (r *resultRepository) GetByID(_ context.Context, id uint) (models.EvaluationResult, error) {
	results, err := r.load()
	if err != nil {
		return models.EvaluationResult{}, err
	}
	for _, res := range results {
		if res.ID == id {
			projected := []models.EvaluationResult{res}
			if err := r.project(projected); err != nil {
				return models.EvaluationResult{}, err
			}
			return projected[0], nil
		}
	}
	return models.EvaluationResult{}, ErrNotFound
}

func (r *resultRepository) ListAll(_ context.Context) ([]models.EvaluationResult, error) {
	results, err := r.load()
	if err != nil {
		return nil, err
	}
	if err := r.project(results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListCompleted(ctx context.Context) ([]models.EvaluationResult, error) {
	results, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	completed := results[:0]
	for _, res := range results {
		if res.IsCompleted() {
			completed = append(completed, res)
		}
	}
	return completed, nil
}

// LatestCompletedBySubmission returns the completed result with the greatest
// evaluation timestamp for the submission. Results that were never stamped
// rank lowest; the first maximal element wins on exact ties.
func (r *resultRepository) LatestCompletedBySubmission(_ context.Context, submissionID uint) (models.EvaluationResult, error) {
	results, err := r.load()
	if err != nil {
		return models.EvaluationResult{}, err
	}

	var latest *models.EvaluationResult
	for i := range results {
		res := &results[i]
		if res.SubmissionID != submissionID || !res.IsCompleted() {
			continue
		}
		if latest == nil || stampAfter(res.EvaluatedAt, latest.EvaluatedAt) {
			latest = res
		}
	}
	if latest == nil {
		return models.EvaluationResult{}, ErrNotFound
	}
	return *latest, nil
}

func stampAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

func (r *resultRepository) SetSpecialJudgeAward(_ context.Context, id uint, flagged bool) error {
	results, err := r.load()
	if err != nil {
		return err
	}
	found := false
	for i := range results {
		if results[i].ID == id {
			results[i].SpecialJudgeAward = flagged
			results[i].UpdatedAt = r.now()
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.store.Save(store.EvaluationResultsFile, results)
}

func (r *resultRepository) GetSpecialJudgeAward(_ context.Context, id uint) (bool, error) {
	results, err := r.load()
	if err != nil {
		return false, err
	}
	for _, res := range results {
		if res.ID == id {
			return res.SpecialJudgeAward, nil
		}
	}
	return false, ErrNotFound
}

func (r *resultRepository) Delete(_ context.Context, id uint) error {
	results, err := r.load()
	if err != nil {
		return err
	}

	kept := results[:0]
	found := false
	for _, res := range results {
		if res.ID == id {
			found = true
			continue
		}
		kept = append(kept, res)
	}
	if !found {
		return ErrNotFound
	}
	if err := r.store.Save(store.EvaluationResultsFile, kept); err != nil {
		return err
	}

	// Details are exclusively owned by the result; remove them with it.
	var details []models.EvaluationDetail
	if err := r.store.Load(store.EvaluationDetailsFile, &details); err != nil {
		return err
	}
	keptDetails := details[:0]
	for _, d := range details {
		if d.EvaluationResultID != id {
			keptDetails = append(keptDetails, d)
		}
	}
	return r.store.Save(store.EvaluationDetailsFile, keptDetails)
}
