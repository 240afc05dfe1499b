package submissions

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chidung091/hr-scanning-sub001/internal/extract"
	"github.com/chidung091/hr-scanning-sub001/internal/jobs"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/metrics"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/storage/object"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/telemetry"
)

const storeNamespace = "cv-submissions"

// Service contains business logic for CV intake.
type Service struct {
	Store   object.ObjectStore
	Repo    Repo
	JobRepo jobs.Repo
}

// Upload stores the CV file, records the submission and extracts its text
// inline. Extraction failure leaves the row in status failed; the upload
// itself still succeeds so the applicant is not bounced.
func (s *Service) Upload(ctx context.Context, jobID, applicantName, applicantEmail, fileName string, r io.Reader) (Submission, error) {
	applicantName = strings.TrimSpace(applicantName)
	applicantEmail = strings.TrimSpace(applicantEmail)
	if fileName == "" {
		return Submission{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if applicantName == "" {
		return Submission{}, fmt.Errorf("%w: applicant name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(applicantEmail); err != nil {
		return Submission{}, fmt.Errorf("%w: applicant email is invalid", ErrInvalidInput)
	}
	if jobID != "" && s.JobRepo != nil {
		if _, err := s.JobRepo.GetByID(ctx, jobID); err != nil {
			return Submission{}, fmt.Errorf("%w: unknown job", ErrInvalidInput)
		}
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, storeNamespace, fileName, r)
	if err != nil {
		return Submission{}, err
	}

	now := time.Now().UTC()
	sub := Submission{
		ID:             uuid.NewString(),
		JobID:          jobID,
		FileName:       fileName,
		StorageKey:     storageKey,
		SizeBytes:      size,
		MimeType:       mimeType,
		ApplicantName:  applicantName,
		ApplicantEmail: applicantEmail,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return Submission{}, err
	}
	metrics.IncSubmissionUploaded()

	return s.extractAndRecord(ctx, sub)
}

// Get returns a submission by ID.
func (s *Service) Get(ctx context.Context, submissionID string) (Submission, error) {
	if submissionID == "" {
		return Submission{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, submissionID)
}

// List returns submissions newest-first with limit/offset.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) extractAndRecord(ctx context.Context, sub Submission) (Submission, error) {
	body, err := s.Store.Open(ctx, sub.StorageKey)
	if err != nil {
		return s.markFailed(ctx, sub, fmt.Errorf("open stored file: %w", err))
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return s.markFailed(ctx, sub, fmt.Errorf("read stored file: %w", err))
	}

	text, err := extract.Text(ctx, raw, sub.MimeType, sub.FileName)
	if err != nil {
		return s.markFailed(ctx, sub, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return s.markFailed(ctx, sub, fmt.Errorf("no text extracted"))
	}

	if err := s.Repo.SetProcessed(ctx, sub.ID, text); err != nil {
		return Submission{}, err
	}
	sub.ExtractedText = text
	sub.Status = StatusProcessed
	sub.ErrorMessage = ""
	return sub, nil
}

func (s *Service) markFailed(ctx context.Context, sub Submission, cause error) (Submission, error) {
	telemetry.Warn("submission.extract_failed", map[string]any{
		"submission_id": sub.ID,
		"mime_type":     sub.MimeType,
		"error":         cause.Error(),
	})
	if err := s.Repo.SetFailed(ctx, sub.ID, cause.Error()); err != nil {
		return Submission{}, err
	}
	sub.Status = StatusFailed
	sub.ErrorMessage = cause.Error()
	return sub, nil
}
