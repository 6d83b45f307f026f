package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/repository"
	"github.com/contestops/pitchscore-api/internal/store"
	"github.com/contestops/pitchscore-api/pkg/ai"
	"github.com/contestops/pitchscore-api/pkg/extract"
)

type fakeScorer struct {
	scores  map[int]ai.Judgement
	failOn  map[int]error
	failAll error
	calls   int
}

func (f *fakeScorer) ScoreCriterion(_ context.Context, _ string, criterionID int) (ai.Judgement, error) {
	f.calls++
	if f.failAll != nil {
		return ai.Judgement{}, f.failAll
	}
	if err, ok := f.failOn[criterionID]; ok {
		return ai.Judgement{}, err
	}
	if j, ok := f.scores[criterionID]; ok {
		return j, nil
	}
	return ai.Judgement{Score: 7, Reason: "solid work"}, nil
}

func (f *fakeScorer) Model() string { return "fake-model" }

type scoringFixture struct {
	service     ScoringService
	submissions repository.SubmissionRepository
	results     repository.ResultRepository
	details     repository.DetailRepository
	submission  models.Submission
}

func newScoringFixture(t *testing.T, scorer ai.CriterionScorer) *scoringFixture {
	t.Helper()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "data"))
	require.NoError(t, err)
	require.NoError(t, st.Ensure())

	schools := repository.NewSchoolRepository(st)
	submissions := repository.NewSubmissionRepository(st)
	files := repository.NewSubmissionFileRepository(st)
	results := repository.NewResultRepository(st)
	details := repository.NewDetailRepository(st)

	school := models.School{Name: "Aoba High"}
	require.NoError(t, schools.Create(context.Background(), &school))

	submission := models.Submission{
		SchoolID:   school.ID,
		ThemeTitle: "Reviving the shopping arcade",
		Status:     models.SubmissionStatusPending,
	}
	require.NoError(t, submissions.Create(context.Background(), &submission))

	docPath := filepath.Join(dir, "pitch.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("Our team surveyed 40 shop owners about foot traffic."), 0o644))
	require.NoError(t, files.Create(context.Background(), &models.SubmissionFile{
		SubmissionID: submission.ID,
		FileName:     "pitch.txt",
		FilePath:     docPath,
		FileType:     "text/plain",
	}))

	manager := ai.NewManager(zerolog.Nop())
	if scorer != nil {
		manager.UseScorer(scorer, ai.ProviderOpenAI)
	}

	svc := NewScoringService(submissions, files, results, details, manager, extract.NewPlainTextExtractor(), zerolog.Nop())

	return &scoringFixture{
		service:     svc,
		submissions: submissions,
		results:     results,
		details:     details,
		submission:  submission,
	}
}

func TestScoreProducesOneDetailPerCriterion(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{scores: map[int]ai.Judgement{
		1: {Score: 9, Reason: "fresh angle"},
		2: {Score: 8, Reason: "grounded in local interviews"},
	}})

	resp, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)

	require.Len(t, resp.Details, len(models.Criteria()))
	require.False(t, resp.Overwritten)
	require.Equal(t, models.TotalMaxScore, resp.MaxScore)

	sum := 0
	for _, d := range resp.Details {
		sum += d.Score
	}
	require.Equal(t, sum, resp.TotalScore)

	submission, err := fx.submissions.GetByID(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusScored, submission.Status)

	result, err := fx.results.GetByID(context.Background(), resp.ResultID)
	require.NoError(t, err)
	require.True(t, result.IsCompleted())
	require.NotNil(t, result.EvaluatedAt)
	require.Equal(t, "fake-model", result.AIModel)
}

func TestScoreToleratesPerCriterionFailures(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{
		failOn: map[int]error{3: errors.New("rate limited")},
	})

	resp, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.Len(t, resp.Details, len(models.Criteria()))

	var failed int
	for _, d := range resp.Details {
		if d.CriterionID == 3 {
			failed++
			require.Zero(t, d.Score)
			require.Contains(t, d.Reason, "scoring error")
			require.Contains(t, d.Reason, "rate limited")
		}
	}
	require.Equal(t, 1, failed)
}

func TestScoreAllCriteriaFailingStillCompletes(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{failAll: errors.New("backend down")})

	resp, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.Len(t, resp.Details, len(models.Criteria()))
	require.Zero(t, resp.TotalScore)

	result, err := fx.results.GetByID(context.Background(), resp.ResultID)
	require.NoError(t, err)
	require.True(t, result.IsCompleted())
}

func TestScoreWithoutProviderFailsBeforeAnyWork(t *testing.T) {
	fx := newScoringFixture(t, nil)

	_, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.ErrorIs(t, err, ai.ErrNotConfigured)

	results, err := fx.results.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestScoreUnknownSubmission(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{})

	_, err := fx.service.Score(context.Background(), 999)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestScoreSubmissionWithoutFiles(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{})

	bare := models.Submission{SchoolID: fx.submission.SchoolID, ThemeTitle: "No documents yet", Status: models.SubmissionStatusPending}
	require.NoError(t, fx.submissions.Create(context.Background(), &bare))

	_, err := fx.service.Score(context.Background(), bare.ID)
	require.ErrorIs(t, err, ErrNoFiles)
}

func TestRescoreReusesLatestCompletedResult(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{})

	first, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)

	second, err := fx.service.Rescore(context.Background(), fx.submission.ID)
	require.NoError(t, err)

	require.Equal(t, first.ResultID, second.ResultID)
	require.True(t, second.Overwritten)

	details, err := fx.details.ListByResult(context.Background(), first.ResultID)
	require.NoError(t, err)
	require.Len(t, details, len(models.Criteria()))

	results, err := fx.results.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestRescoreWithoutPriorResultCreatesOne(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{})

	resp, err := fx.service.Rescore(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.False(t, resp.Overwritten)
	require.NotZero(t, resp.ResultID)
}

func TestScoreTwiceKeepsBothResults(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{})

	first, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	second, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ResultID, second.ResultID)

	results, err := fx.results.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestScoreCallsScorerOncePerCriterion(t *testing.T) {
	scorer := &fakeScorer{}
	fx := newScoringFixture(t, scorer)

	_, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.Equal(t, len(models.Criteria()), scorer.calls)
}

func TestScoreDetailReasonsSurviveRoundTrip(t *testing.T) {
	fx := newScoringFixture(t, &fakeScorer{scores: map[int]ai.Judgement{
		1: {Score: 10, Reason: fmt.Sprintf("exceptional framing of %q", "local decline")},
	}})

	resp, err := fx.service.Score(context.Background(), fx.submission.ID)
	require.NoError(t, err)

	details, err := fx.details.ListByResult(context.Background(), resp.ResultID)
	require.NoError(t, err)

	var found bool
	for _, d := range details {
		if d.CriterionID == 1 {
			found = true
			require.Equal(t, 10, d.Score)
			require.Contains(t, d.Reason, "exceptional framing")
			require.NotEmpty(t, d.CriterionName)
		}
	}
	require.True(t, found)
}
