package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type ProblemRepository interface {
	// List returns active problems in display order
	List(ctx context.Context) ([]*domain.Problem, error)

	// Get returns errs.ProblemNotFound for unknown ids
	Get(ctx context.Context, id string) (*domain.Problem, error)
}

type CompletionRepository interface {
	// Mark records a completion; marking twice is a no-op
	Mark(ctx context.Context, userID int64, problemID string) error

	// Unmark removes a completion; unmarking a missing one is a no-op
	Unmark(ctx context.Context, userID int64, problemID string) error

	List(ctx context.Context, userID int64) ([]*domain.CompletedProblem, error)
}
