package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type UserPort interface {
	// Upsert inserts or refreshes a user keyed by GitHub id and fills in user.ID
	Upsert(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id int64) (*domain.Users, error)
	GetByGithubID(ctx context.Context, githubID int64) (*domain.Users, error)
}
