package models

import "time"

// School represents a participating school registered by a contest organizer.
type School struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Prefecture   string    `json:"prefecture"`
	ContactEmail string    `json:"contact_email"`
	ContactName  string    `json:"contact_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
