package auth

import (
	"context"
	"fmt"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

var _ IAuthService = &githubAuthService{}

type githubAuthService struct {
	userPort secondary.UserPort
	identity secondary.IdentityProvider
	github   secondary.GithubAPI
	logger   primary.Logger
}

func NewGithubAuthService(
	userPort secondary.UserPort,
	identity secondary.IdentityProvider,
	github secondary.GithubAPI,
	logger primary.Logger,
) IAuthService {
	return &githubAuthService{
		userPort: userPort,
		identity: identity,
		github:   github,
		logger:   logger,
	}
}

func (g githubAuthService) ProviderName() domain.Provider {
	return domain.ProviderGithub
}

func (g githubAuthService) LoginURL(state string) string {
	return g.identity.AuthCodeURL(state)
}

func (g githubAuthService) Login(ctx context.Context, code string, current *domain.Session) (*domain.Session, error) {
	if code == "" {
		return nil, errs.TokenExchange
	}
	accessToken, err := g.identity.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	ghUser, err := g.github.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user := &domain.Users{
		GithubID:  ghUser.ID,
		Login:     ghUser.Login,
		Name:      ghUser.Name,
		AvatarURL: ghUser.AvatarURL,
	}
	if err := g.userPort.Upsert(ctx, user); err != nil {
		g.logger.Error("Failed to upsert user", "githubId", ghUser.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", errs.FailedToCreateUser, err)
	}
	g.logger.Info("User logged in", "userId", user.ID, "login", user.Login)

	sid := ""
	if current != nil {
		sid = current.ID
	}
	if sid == "" {
		sid = domain.NewAnonymousSession().ID
	}
	return &domain.Session{
		ID:          sid,
		UserID:      &user.ID,
		Login:       user.Login,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		AccessToken: accessToken,
	}, nil
}
