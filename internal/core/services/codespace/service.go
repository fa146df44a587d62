package codespace

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// ICodespaceService manages the per-problem GitHub codespaces of a user
type ICodespaceService interface {
	// Create starts a codespace for the problem and blocks until it is available.
	// It returns the codespace web URL.
	Create(ctx context.Context, accessToken, problemID string) (string, error)
	List(ctx context.Context, accessToken string) ([]*domain.Codespace, error)

	// Active returns the first codespace created for the problem, or nil
	Active(ctx context.Context, accessToken, problemID string) (*domain.Codespace, error)
	Delete(ctx context.Context, accessToken, name string) error
}
