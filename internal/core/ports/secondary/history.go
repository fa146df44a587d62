package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// SubmissionHistory stores judged submissions per (session, problem)
type SubmissionHistory interface {
	Append(ctx context.Context, sessionID, problemID string, record *domain.SubmissionRecord) error
	List(ctx context.Context, sessionID, problemID string) ([]*domain.SubmissionRecord, error)
}

// ResultPublisher announces judged submissions to other services
type ResultPublisher interface {
	Publish(ctx context.Context, event *domain.SubmissionEvent) error
}
