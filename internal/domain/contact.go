package domain

import "time"

// Contact is a message submitted through the contact form. The store assigns
// ID and SubmittedAt on creation; neither is ever updated afterwards.
type Contact struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Message     string    `json:"message" db:"message"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// ContactProgram links a contact to a program. The pair of foreign keys is
// the whole identity; rows are removed by cascade when either parent goes.
type ContactProgram struct {
	ContactID int `json:"contact_id" db:"contact_id"`
	ProgramID int `json:"program_id" db:"program_id"`
}
