package evaluations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chidung091/hr-scanning-sub001/internal/criteria"
	"github.com/chidung091/hr-scanning-sub001/internal/jobs"
	"github.com/chidung091/hr-scanning-sub001/internal/questionnaire"
	"github.com/chidung091/hr-scanning-sub001/internal/scoring"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/metrics"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/telemetry"
	"github.com/chidung091/hr-scanning-sub001/internal/submissions"
)

// Service runs the evaluation pipeline: gather context, call the scorer,
// persist the outcome.
type Service struct {
	Repo              Repo
	SubmissionRepo    submissions.Repo
	JobRepo           jobs.Repo
	CriteriaRepo      criteria.Repo
	QuestionnaireRepo questionnaire.Repo
	Scorer            scoring.Client
}

// Create evaluates one submission. The row is written status=pending before
// the external call and completed/failed after, so a crash mid-call still
// leaves a record. A submission without extracted text fails immediately
// without calling the scorer. Scorer failures are recorded on the row and
// not retried.
func (s *Service) Create(ctx context.Context, submissionID string) (Evaluation, error) {
	if submissionID == "" {
		return Evaluation{}, fmt.Errorf("%w: submissionId is required", ErrInvalidInput)
	}
	submission, err := s.SubmissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, submissions.ErrNotFound) {
			return Evaluation{}, fmt.Errorf("%w: unknown submission", ErrInvalidInput)
		}
		return Evaluation{}, err
	}

	now := time.Now().UTC()
	evaluation := Evaluation{
		ID:                       uuid.NewString(),
		SubmissionID:             submission.ID,
		JobID:                    submission.JobID,
		Strengths:                []string{},
		Weaknesses:               []string{},
		LinkedCriteriaIDs:        []string{},
		QuestionnaireResponseIDs: []string{},
		Status:                   StatusPending,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.Repo.Create(ctx, evaluation); err != nil {
		return Evaluation{}, err
	}
	metrics.IncEvaluationStarted()

	cvText := strings.TrimSpace(submission.ExtractedText)
	if cvText == "" {
		return s.fail(ctx, evaluation, errors.New("submission has no extracted text"))
	}

	input := scoring.Input{CVText: cvText}
	if submission.JobID != "" {
		job, err := s.JobRepo.GetByID(ctx, submission.JobID)
		if err != nil && !errors.Is(err, jobs.ErrNotFound) {
			return s.fail(ctx, evaluation, err)
		}
		if err == nil {
			input.JobTitle = job.Title
			input.JobRequirements = job.Requirements
			input.NiceToHave = job.NiceToHave
		}
	}

	activeCriteria, err := s.CriteriaRepo.ListActive(ctx)
	if err != nil {
		return s.fail(ctx, evaluation, err)
	}
	for _, criterion := range activeCriteria {
		evaluation.LinkedCriteriaIDs = append(evaluation.LinkedCriteriaIDs, criterion.ID)
		input.Criteria = append(input.Criteria, scoring.Criterion{
			Name:        criterion.Name,
			Weight:      criterion.Weight,
			Description: criterion.Description,
		})
	}

	sessions, err := s.QuestionnaireRepo.ListBySubmission(ctx, submission.ID)
	if err != nil {
		return s.fail(ctx, evaluation, err)
	}
	input.Answers = map[string]string{}
	for _, session := range sessions {
		evaluation.QuestionnaireResponseIDs = append(evaluation.QuestionnaireResponseIDs, session.ID)
		for question, answer := range session.Answers {
			input.Answers[question] = answer
		}
	}

	result, err := s.Scorer.Score(ctx, input)
	if err != nil {
		failed, failErr := s.fail(ctx, evaluation, err)
		if failErr != nil {
			return Evaluation{}, failErr
		}
		if errors.Is(err, scoring.ErrNotConfigured) {
			return failed, scoring.ErrNotConfigured
		}
		return failed, nil
	}

	score := clampScore(result.Score)
	evaluation.Score = &score
	evaluation.Strengths = nonNil(result.Strengths)
	evaluation.Weaknesses = nonNil(result.Weaknesses)
	evaluation.Explanation = result.Explanation
	evaluation.Recommendation = normalizeRecommendation(result.Recommendation, score)
	evaluation.Model = result.Model
	evaluation.TokensUsed = result.TokensUsed
	evaluation.LatencyMs = result.LatencyMs
	evaluation.Status = StatusCompleted

	if err := s.Repo.Complete(ctx, evaluation); err != nil {
		return Evaluation{}, err
	}
	metrics.IncEvaluationCompleted()
	metrics.ObserveEvaluationDurationMs(float64(result.LatencyMs))
	telemetry.Info("evaluation.completed", map[string]any{
		"evaluation_id": evaluation.ID,
		"submission_id": evaluation.SubmissionID,
		"score":         score,
		"model":         evaluation.Model,
		"tokens_used":   evaluation.TokensUsed,
		"latency_ms":    evaluation.LatencyMs,
	})
	return evaluation, nil
}

// Get returns an evaluation by ID.
func (s *Service) Get(ctx context.Context, evaluationID string) (Evaluation, error) {
	if evaluationID == "" {
		return Evaluation{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, evaluationID)
}

// List returns evaluations newest-first with limit/offset.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Evaluation, error) {
	return s.Repo.List(ctx, limit, offset)
}

// ListBySubmission returns all evaluations for one submission.
func (s *Service) ListBySubmission(ctx context.Context, submissionID string) ([]Evaluation, error) {
	return s.Repo.ListBySubmission(ctx, submissionID)
}

func (s *Service) fail(ctx context.Context, evaluation Evaluation, cause error) (Evaluation, error) {
	telemetry.Warn("evaluation.failed", map[string]any{
		"evaluation_id": evaluation.ID,
		"submission_id": evaluation.SubmissionID,
		"error":         cause.Error(),
	})
	if err := s.Repo.Fail(ctx, evaluation.ID, cause.Error()); err != nil {
		return Evaluation{}, err
	}
	metrics.IncEvaluationFailed()
	evaluation.Status = StatusFailed
	evaluation.ErrorMessage = cause.Error()
	return evaluation, nil
}

func clampScore(score float64) float64 {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// normalizeRecommendation keeps the model's value when it is one of the
// known enum members and otherwise derives one from the score.
func normalizeRecommendation(recommendation string, score float64) string {
	switch strings.ToLower(strings.TrimSpace(recommendation)) {
	case RecommendationRecommended:
		return RecommendationRecommended
	case RecommendationMaybe:
		return RecommendationMaybe
	case RecommendationNotRecommended:
		return RecommendationNotRecommended
	}
	switch {
	case score >= 7:
		return RecommendationRecommended
	case score >= 4:
		return RecommendationMaybe
	default:
		return RecommendationNotRecommended
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
