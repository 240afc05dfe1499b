package jobs

import "time"

// Job is an open position candidates can apply against.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Headcount    int       `json:"headcount"`
	WorkingHours string    `json:"workingHours"`
	WorkingDays  string    `json:"workingDays"`
	Requirements string    `json:"requirements"`
	NiceToHave   string    `json:"niceToHave"`
	IsActive     bool      `json:"isActive"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
