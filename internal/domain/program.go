package domain

// Program is a training program offered by the platform. Name is unique
// across all programs at the store level.
type Program struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
