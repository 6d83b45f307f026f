package models

import "time"

// Submission represents one school's themed contest entry.
type Submission struct {
	ID               uint      `json:"id"`
	SchoolID         uint      `json:"school_id"`
	ThemeTitle       string    `json:"theme_title"`
	ThemeDescription string    `json:"theme_description"`
	Status           string    `json:"submission_status"`
	SubmittedAt      time.Time `json:"submitted_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// SchoolName is a read-time projection and never written to storage.
	SchoolName string `json:"school_name,omitempty"`
}

const (
	// SubmissionStatusPending indicates the entry has been registered but not scored.
	SubmissionStatusPending = "pending"
	// SubmissionStatusScored indicates at least one completed scoring pass exists.
	SubmissionStatusScored = "scored"
)

// SubmissionFile records one uploaded file belonging to a submission.
type SubmissionFile struct {
	ID           uint      `json:"id"`
	SubmissionID uint      `json:"submission_id"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
