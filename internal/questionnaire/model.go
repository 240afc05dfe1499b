package questionnaire

import "time"

// Session tracks an applicant's progress through the pre-screening
// questionnaire for one CV submission. Answers are keyed by question
// number ("1".."N").
type Session struct {
	ID                 string            `json:"id"`
	SubmissionID       string            `json:"submissionId"`
	Answers            map[string]string `json:"answers"`
	CurrentQuestion    int               `json:"currentQuestion"`
	QuestionsCompleted int               `json:"questionsCompleted"`
	IsCompleted        bool              `json:"isCompleted"`
	Language           string            `json:"language"`
	StartedAt          *time.Time        `json:"startedAt,omitempty"`
	CompletedAt        *time.Time        `json:"completedAt,omitempty"`
	LastActivityAt     *time.Time        `json:"lastActivityAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// CleanupReport summarises one expired-session sweep.
type CleanupReport struct {
	Expired    int      `json:"expired"`
	Reset      int      `json:"reset"`
	DryRun     bool     `json:"dryRun"`
	SessionIDs []string `json:"sessionIds"`
}
