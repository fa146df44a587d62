package auth

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider

	// LoginURL is where the browser is sent to authorize the app
	LoginURL(state string) string

	// Login finishes the OAuth flow for code and upgrades current into a
	// logged-in session. The session id is kept so anonymous history survives login.
	Login(ctx context.Context, code string, current *domain.Session) (*domain.Session, error)
}
