package service

import (
	"sort"
	"strings"

	"github.com/contestops/pitchscore-api/internal/models"
)

// Award labels. The decorative glyph is part of the stored label and stripped
// only for certificate template selection.
const (
	AwardTop          = "🏆 Top Award"
	AwardExcellence   = "🥇 Excellence Award"
	AwardSpecialJudge = "⭐ Special Judge Award"
)

// AwardService derives award labels from completed evaluation results. The
// computation is pure: it never touches storage and identical input always
// produces identical output.
type AwardService struct{}

// NewAwardService constructs the award engine.
func NewAwardService() *AwardService {
	return &AwardService{}
}

// DetermineAwards maps result ids to their ordered award labels. Rank awards
// go to the top three by total score; the manually toggled special judge
// award is appended independently of rank. Results winning nothing are absent
// from the map.
func (s *AwardService) DetermineAwards(results []models.EvaluationResult) map[uint][]string {
	completed := make([]models.EvaluationResult, 0, len(results))
	for _, r := range results {
		if r.IsCompleted() {
			completed = append(completed, r)
		}
	}
	if len(completed) == 0 {
		return map[uint][]string{}
	}

	// Ties keep their input order: ranking is insertion-order dependent, so
	// the sort must be stable rather than re-deriving an order from ids.
	sorted := make([]models.EvaluationResult, len(completed))
	copy(sorted, completed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})

	awards := make(map[uint][]string)
	for idx, result := range sorted {
		switch {
		case idx == 0:
			awards[result.ID] = append(awards[result.ID], AwardTop)
		case idx <= 2:
			awards[result.ID] = append(awards[result.ID], AwardExcellence)
		}
	}

	for _, result := range completed {
		if result.SpecialJudgeAward {
			awards[result.ID] = append(awards[result.ID], AwardSpecialJudge)
		}
	}

	return awards
}

// SortByScore returns the completed results in ranking order, ties keeping
// their input order. Used by the ranking view so the displayed order always
// matches the order awards were assigned in.
func (s *AwardService) SortByScore(results []models.EvaluationResult) []models.EvaluationResult {
	sorted := make([]models.EvaluationResult, 0, len(results))
	for _, r := range results {
		if r.IsCompleted() {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}

// FormatAwards renders an award list for display.
func FormatAwards(awards []string) string {
	return strings.Join(awards, " / ")
}
