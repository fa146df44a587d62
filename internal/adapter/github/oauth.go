package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const DefaultOAuthURL = "https://github.com"

var _ secondary.IdentityProvider = (*OAuthProvider)(nil)

// OAuthProvider runs GitHub's web application flow.
type OAuthProvider struct {
	cfg        *oauth2.Config
	httpClient *http.Client
}

func NewOAuthProvider(cfg *config.GithubConfig, httpClient *http.Client) *OAuthProvider {
	base := strings.TrimRight(cfg.OAuthBaseURL, "/")
	if base == "" {
		base = DefaultOAuthURL
	}
	return &OAuthProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/login/oauth/authorize",
				TokenURL:  base + "/login/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *OAuthProvider) Exchange(ctx context.Context, code string) (string, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.TokenExchange, err)
	}
	if tok.AccessToken == "" {
		return "", errs.NoAccessToken
	}
	return tok.AccessToken, nil
}
