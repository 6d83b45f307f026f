package dto

import (
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
)

// SubmissionCreateRequest registers a school's contest entry.
type SubmissionCreateRequest struct {
	SchoolID         uint   `json:"school_id" validate:"required,gt=0"`
	ThemeTitle       string `json:"theme_title" validate:"required,min=1,max=255"`
	ThemeDescription string `json:"theme_description" validate:"omitempty,max=2000"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID               uint      `json:"id"`
	SchoolID         uint      `json:"school_id"`
	SchoolName       string    `json:"school_name"`
	ThemeTitle       string    `json:"theme_title"`
	ThemeDescription string    `json:"theme_description"`
	Status           string    `json:"submission_status"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// NewSubmissionResponse projects a submission record into its API shape.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:               submission.ID,
		SchoolID:         submission.SchoolID,
		SchoolName:       submission.SchoolName,
		ThemeTitle:       submission.ThemeTitle,
		ThemeDescription: submission.ThemeDescription,
		Status:           submission.Status,
		SubmittedAt:      submission.SubmittedAt,
	}
}

// UploadResponse describes a registered submission file.
type UploadResponse struct {
	ID           uint   `json:"id"`
	SubmissionID uint   `json:"submission_id"`
	FileName     string `json:"file_name"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
}

// NewUploadResponse projects a file record into its API shape.
func NewUploadResponse(file models.SubmissionFile) UploadResponse {
	return UploadResponse{
		ID:           file.ID,
		SubmissionID: file.SubmissionID,
		FileName:     file.FileName,
		FileType:     file.FileType,
		FileSize:     file.FileSize,
	}
}
