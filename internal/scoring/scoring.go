package scoring

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no scoring credential is configured.
var ErrNotConfigured = errors.New("scoring is not configured")

// Criterion is one weighted scoring dimension passed to the model.
type Criterion struct {
	Name        string
	Weight      float64
	Description string
}

// Input carries everything the scorer needs about one candidate.
type Input struct {
	JobTitle        string
	JobRequirements string
	NiceToHave      string
	Criteria        []Criterion
	CVText          string
	// Answers are questionnaire answers keyed by question number.
	Answers map[string]string
}

// Result is the structured outcome of one scoring call.
type Result struct {
	Score          float64
	Strengths      []string
	Weaknesses     []string
	Explanation    string
	Recommendation string
	Model          string
	TokensUsed     int
	LatencyMs      int64
}

// Client scores one candidate against one job.
type Client interface {
	Score(ctx context.Context, input Input) (Result, error)
}

// NotConfigured is the degraded client used when no API key is set. Every
// call fails with ErrNotConfigured instead of reaching the network.
type NotConfigured struct{}

func (NotConfigured) Score(context.Context, Input) (Result, error) {
	return Result{}, ErrNotConfigured
}
