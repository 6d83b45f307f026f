package dto

import (
	"time"

	"github.com/contestops/pitchscore-api/internal/models"
)

// SchoolCreateRequest registers a participating school.
type SchoolCreateRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Prefecture   string `json:"prefecture" validate:"omitempty,max=64"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactName  string `json:"contact_name" validate:"omitempty,max=255"`
}

// SchoolResponse is returned to API clients when viewing schools.
type SchoolResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Prefecture   string    `json:"prefecture"`
	ContactEmail string    `json:"contact_email"`
	ContactName  string    `json:"contact_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSchoolResponse projects a school record into its API shape.
func NewSchoolResponse(school models.School) SchoolResponse {
	return SchoolResponse{
		ID:           school.ID,
		Name:         school.Name,
		Prefecture:   school.Prefecture,
		ContactEmail: school.ContactEmail,
		ContactName:  school.ContactName,
		CreatedAt:    school.CreatedAt,
	}
}
