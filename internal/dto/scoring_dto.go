package dto

import "github.com/contestops/pitchscore-api/internal/models"

// ScoreResponse reports the outcome of one scoring pass.
type ScoreResponse struct {
	ResultID    uint             `json:"result_id"`
	TotalScore  int              `json:"total_score"`
	MaxScore    int              `json:"max_score"`
	Overwritten bool             `json:"overwritten"`
	Details     []DetailResponse `json:"details"`
}

// DetailResponse serializes one criterion's judgement.
type DetailResponse struct {
	CriterionID   int    `json:"criterion_id"`
	CriterionName string `json:"criterion_name"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	Reason        string `json:"reason"`
}

// NewScoreResponse assembles a scoring pass outcome.
func NewScoreResponse(resultID uint, totalScore int, overwritten bool, details []models.EvaluationDetail) ScoreResponse {
	out := ScoreResponse{
		ResultID:    resultID,
		TotalScore:  totalScore,
		MaxScore:    models.TotalMaxScore,
		Overwritten: overwritten,
		Details:     make([]DetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, NewDetailResponse(d))
	}
	return out
}

// NewDetailResponse projects a detail record into its API shape.
func NewDetailResponse(detail models.EvaluationDetail) DetailResponse {
	maxScore := 10
	if criterion, ok := models.CriterionByID(detail.CriterionID); ok {
		maxScore = criterion.MaxScore
	}
	return DetailResponse{
		CriterionID:   detail.CriterionID,
		CriterionName: detail.CriterionName,
		Score:         detail.Score,
		MaxScore:      maxScore,
		Reason:        detail.Reason,
	}
}
