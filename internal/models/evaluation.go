package models

import "time"

// EvaluationResult aggregates one scoring pass over a submission. TotalScore is
// the sum of the associated detail scores once the pass has completed.
type EvaluationResult struct {
	ID                uint       `json:"id"`
	SubmissionID      uint       `json:"submission_id"`
	TotalScore        int        `json:"total_score"`
	MaxScore          int        `json:"max_score"`
	Status            string     `json:"evaluation_status"`
	EvaluatedAt       *time.Time `json:"evaluated_at"`
	AIModel           string     `json:"ai_model"`
	SpecialJudgeAward bool       `json:"special_judge_award"`
	Notes             string     `json:"evaluation_notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Read-time projections joined from the submission and school records.
	SchoolName string `json:"school_name,omitempty"`
	ThemeTitle string `json:"theme_title,omitempty"`
}

const (
	// EvaluationStatusProcessing indicates a scoring pass is underway.
	EvaluationStatusProcessing = "processing"
	// EvaluationStatusCompleted indicates every criterion has been attempted.
	EvaluationStatusCompleted = "completed"
)

// IsCompleted reports whether the result represents a finished scoring pass.
func (r EvaluationResult) IsCompleted() bool {
	return r.Status == EvaluationStatusCompleted
}

// EvaluationDetail holds one criterion's score and justification within a result.
// At most one detail exists per (result, criterion) pair; rescoring removes the
// previous set before regenerating.
type EvaluationDetail struct {
	ID                 uint      `json:"id"`
	EvaluationResultID uint      `json:"evaluation_result_id"`
	CriterionID        int       `json:"criterion_id"`
	Score              int       `json:"score"`
	Reason             string    `json:"evaluation_reason"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Read-time projections from the criterion catalog.
	CriterionName        string `json:"criterion_name,omitempty"`
	CriterionDescription string `json:"criterion_description,omitempty"`
}
