package submission

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type ISubmissionService interface {
	// Submit judges code against every test of the problem and records the outcome
	// in the session's history.
	Submit(ctx context.Context, session *domain.Session, problemID, code string) (*domain.SubmissionRecord, error)

	// History returns the session's submissions for a problem, oldest first
	History(ctx context.Context, session *domain.Session, problemID string) ([]*domain.SubmissionRecord, error)
}
