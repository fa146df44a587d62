package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// GithubAPI is the slice of the GitHub REST API the platform uses.
// Every call is made on behalf of the user owning accessToken.
type GithubAPI interface {
	GetUser(ctx context.Context, accessToken string) (*domain.GithubUser, error)
	GetRepository(ctx context.Context, accessToken, fullName string) (*domain.Repository, error)
	ListMachines(ctx context.Context, accessToken, fullName string) ([]domain.Machine, error)
	CreateCodespace(ctx context.Context, accessToken string, spec domain.CodespaceSpec) (*domain.Codespace, error)
	GetCodespace(ctx context.Context, accessToken, name string) (*domain.Codespace, error)
	ListCodespaces(ctx context.Context, accessToken string) ([]*domain.Codespace, error)
	DeleteCodespace(ctx context.Context, accessToken, name string) error
}

// IdentityProvider runs the OAuth authorization-code flow
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}
