package completion

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// Dashboard is everything the dashboard page shows for a logged-in user
type Dashboard struct {
	User       *domain.SessionUser        `json:"user"`
	Completed  []*domain.CompletedProblem `json:"completed_problems"`
	Codespaces []*domain.Codespace        `json:"codespaces"`
}

type ICompletionService interface {
	Mark(ctx context.Context, session *domain.Session, problemID string) error
	Unmark(ctx context.Context, session *domain.Session, problemID string) error

	// List returns the user's completions newest first, annotated with problem titles
	List(ctx context.Context, userID int64) ([]*domain.CompletedProblem, error)
	Dashboard(ctx context.Context, session *domain.Session) (*Dashboard, error)
}
