package problem

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type IProblemService interface {
	// List returns the active problems matching filter. HideCompleted only
	// applies when userID is set.
	List(ctx context.Context, userID *int64, filter domain.ProblemFilter) ([]*domain.Problem, error)
	Get(ctx context.Context, id string) (*domain.Problem, error)
}
