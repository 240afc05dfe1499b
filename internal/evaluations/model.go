package evaluations

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	RecommendationRecommended    = "recommended"
	RecommendationMaybe          = "maybe"
	RecommendationNotRecommended = "not_recommended"
)

// Evaluation is the persisted outcome of scoring one CV submission
// against one job.
type Evaluation struct {
	ID                       string    `json:"id"`
	SubmissionID             string    `json:"submissionId"`
	JobID                    string    `json:"jobId,omitempty"`
	Score                    *float64  `json:"score,omitempty"`
	Strengths                []string  `json:"strengths"`
	Weaknesses               []string  `json:"weaknesses"`
	Explanation              string    `json:"explanation"`
	Recommendation           string    `json:"recommendation,omitempty"`
	LinkedCriteriaIDs        []string  `json:"linkedCriteriaIds"`
	QuestionnaireResponseIDs []string  `json:"questionnaireResponseIds"`
	Model                    string    `json:"model,omitempty"`
	TokensUsed               int       `json:"tokensUsed"`
	LatencyMs                int64     `json:"latencyMs"`
	Status                   string    `json:"status"`
	ErrorMessage             string    `json:"errorMessage,omitempty"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}
