package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/repository"
	"github.com/contestops/pitchscore-api/internal/store"
)

type rankingFixture struct {
	service RankingService
	results repository.ResultRepository
	details repository.DetailRepository
}

// seedScoredSubmission creates a school, submission and completed result with
// the given total score, and returns the result id.
func (fx *rankingFixture) seed(t *testing.T, schools repository.SchoolRepository, submissions repository.SubmissionRepository, schoolName string, score int) uint {
	t.Helper()
	ctx := context.Background()

	school := models.School{Name: schoolName}
	require.NoError(t, schools.Create(ctx, &school))

	submission := models.Submission{SchoolID: school.ID, ThemeTitle: schoolName + " entry", Status: models.SubmissionStatusScored}
	require.NoError(t, submissions.Create(ctx, &submission))

	result := models.EvaluationResult{SubmissionID: submission.ID, AIModel: "fake-model"}
	require.NoError(t, fx.results.Create(ctx, &result))
	require.NoError(t, fx.results.Update(ctx, result.ID, score, models.EvaluationStatusCompleted, ""))
	return result.ID
}

func newRankingFixture(t *testing.T, scores map[string]int, order []string) (*rankingFixture, map[string]uint) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	require.NoError(t, st.Ensure())

	schools := repository.NewSchoolRepository(st)
	submissions := repository.NewSubmissionRepository(st)
	results := repository.NewResultRepository(st)
	details := repository.NewDetailRepository(st)

	fx := &rankingFixture{results: results, details: details}
	fx.service = NewRankingService(
		results,
		details,
		NewAwardService(),
		NewCertificateService(details, "City Pitch Contest", zerolog.Nop()),
		zerolog.Nop(),
	)

	ids := make(map[string]uint, len(scores))
	for _, name := range order {
		ids[name] = fx.seed(t, schools, submissions, name, scores[name])
	}
	return fx, ids
}

func TestRankingOrdersByScoreWithAwards(t *testing.T) {
	fx, ids := newRankingFixture(t,
		map[string]int{"Aoba High": 40, "Kita Tech": 55, "Minami Girls": 48, "Higashi High": 52, "Nishi Commercial": 30},
		[]string{"Aoba High", "Kita Tech", "Minami Girls", "Higashi High", "Nishi Commercial"},
	)

	entries, err := fx.service.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, ids["Kita Tech"], entries[0].ResultID)
	require.Equal(t, []string{AwardTop}, entries[0].Awards)

	require.Equal(t, ids["Higashi High"], entries[1].ResultID)
	require.Equal(t, []string{AwardExcellence}, entries[1].Awards)
	require.Equal(t, ids["Minami Girls"], entries[2].ResultID)
	require.Equal(t, []string{AwardExcellence}, entries[2].Awards)

	require.Empty(t, entries[3].Awards)
	require.Empty(t, entries[4].Awards)
	require.Equal(t, "Aoba High", entries[3].SchoolName)
}

func TestRankingEmptyWhenNothingScored(t *testing.T) {
	fx, _ := newRankingFixture(t, nil, nil)

	entries, err := fx.service.Ranking(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSpecialAwardToggleShowsUpInRanking(t *testing.T) {
	fx, ids := newRankingFixture(t,
		map[string]int{"Aoba High": 20, "Kita Tech": 50},
		[]string{"Aoba High", "Kita Tech"},
	)

	require.NoError(t, fx.service.SetSpecialAward(context.Background(), ids["Aoba High"], true))

	entries, err := fx.service.Ranking(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{AwardExcellence, AwardSpecialJudge}, entries[1].Awards)

	require.NoError(t, fx.service.SetSpecialAward(context.Background(), ids["Aoba High"], false))
	entries, err = fx.service.Ranking(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{AwardExcellence}, entries[1].Awards)
}

func TestSpecialAwardUnknownResult(t *testing.T) {
	fx, _ := newRankingFixture(t, nil, nil)
	require.ErrorIs(t, fx.service.SetSpecialAward(context.Background(), 99, true), ErrResultNotFound)
}

func TestRankingDetailsProjectCriterionNames(t *testing.T) {
	fx, ids := newRankingFixture(t,
		map[string]int{"Aoba High": 45},
		[]string{"Aoba High"},
	)

	ctx := context.Background()
	for _, criterion := range models.Criteria() {
		require.NoError(t, fx.details.Create(ctx, &models.EvaluationDetail{
			EvaluationResultID: ids["Aoba High"],
			CriterionID:        criterion.ID,
			Score:              7,
			Reason:             "consistent work",
		}))
	}

	details, err := fx.service.Details(ctx, ids["Aoba High"])
	require.NoError(t, err)
	require.Len(t, details, len(models.Criteria()))
	require.Equal(t, "Originality of Perspective", details[0].CriterionName)
}

func TestRankingDetailsUnknownResult(t *testing.T) {
	fx, _ := newRankingFixture(t, nil, nil)
	_, err := fx.service.Details(context.Background(), 12)
	require.ErrorIs(t, err, ErrResultNotFound)
}

func TestCertificatesForWinner(t *testing.T) {
	fx, ids := newRankingFixture(t,
		map[string]int{"Aoba High": 55, "Kita Tech": 30},
		[]string{"Aoba High", "Kita Tech"},
	)

	ctx := context.Background()
	require.NoError(t, fx.details.Create(ctx, &models.EvaluationDetail{
		EvaluationResultID: ids["Aoba High"],
		CriterionID:        4,
		Score:              10,
		Reason:             "exhaustive analysis",
	}))

	resp, err := fx.service.Certificates(ctx, ids["Aoba High"])
	require.NoError(t, err)
	require.Equal(t, []string{AwardTop}, resp.Awards)
	require.Equal(t, "Aoba High", resp.SchoolName)
	require.Len(t, resp.Certificates, 1)
	require.Contains(t, resp.Certificates[AwardTop], "deep logical analysis (10/10)")
}

func TestCertificatesForUnawardedResult(t *testing.T) {
	fx, ids := newRankingFixture(t,
		map[string]int{"Aoba High": 55, "Kita Tech": 50, "Minami Girls": 45, "Higashi High": 40},
		[]string{"Aoba High", "Kita Tech", "Minami Girls", "Higashi High"},
	)

	resp, err := fx.service.Certificates(context.Background(), ids["Higashi High"])
	require.NoError(t, err)
	require.Empty(t, resp.Awards)
	require.Empty(t, resp.Certificates)
}
