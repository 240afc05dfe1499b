package submissions

import "time"

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusFailed    = "failed"
)

// Submission is one uploaded CV plus applicant metadata.
type Submission struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId,omitempty"`
	FileName       string    `json:"fileName"`
	StorageKey     string    `json:"-"`
	SizeBytes      int64     `json:"sizeBytes"`
	MimeType       string    `json:"mimeType"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	ExtractedText  string    `json:"-"`
	Status         string    `json:"status"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
