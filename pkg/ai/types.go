package ai

import "context"

// Judgement is the structured verdict returned for one rubric criterion.
type Judgement struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// DefaultJudgement is substituted when a model reply carries no parseable
// JSON object. It is a neutral mid-band score, not an error.
func DefaultJudgement() Judgement {
	return Judgement{Score: 5, Reason: "evaluation failed"}
}

// CriterionScorer grades submission text against one rubric criterion.
type CriterionScorer interface {
	// ScoreCriterion judges content against the identified criterion.
	// Transport, auth, and quota failures are returned as errors; malformed
	// model output is absorbed into DefaultJudgement instead.
	ScoreCriterion(ctx context.Context, content string, criterionID int) (Judgement, error)

	// Model returns the label of the backend model used for judgements.
	Model() string
}

// defaultMaxContentChars bounds the submission text included in a prompt so
// large uploads stay within backend context limits.
const defaultMaxContentChars = 8000

// defaultTemperature is fixed low so repeated rubric runs stay comparable.
const defaultTemperature float32 = 0.2

func truncateContent(content string, limit int) string {
	if limit <= 0 {
		limit = defaultMaxContentChars
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
