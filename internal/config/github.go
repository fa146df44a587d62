package config

import (
	"time"

	"github.com/spf13/viper"
)

type GithubConfig struct {
	ClientID           string
	ClientSecret       string
	RedirectURL        string
	Scopes             []string
	APIBaseURL         string
	OAuthBaseURL       string
	TemplateRepo       string
	Location           string
	IdleTimeoutMinutes int
	PollInterval       time.Duration
	PollAttempts       int
}

func NewGithubConfig(v *viper.Viper) *GithubConfig {
	return &GithubConfig{
		ClientID:           v.GetString("GITHUB_CLIENT_ID"),
		ClientSecret:       v.GetString("GITHUB_CLIENT_SECRET"),
		RedirectURL:        v.GetString("GITHUB_REDIRECT_URI"),
		Scopes:             []string{"codespace", "user:email"},
		APIBaseURL:         v.GetString("GITHUB_API_URL"),
		OAuthBaseURL:       v.GetString("GITHUB_OAUTH_URL"),
		TemplateRepo:       v.GetString("TEMPLATE_REPO"),
		Location:           v.GetString("CODESPACE_LOCATION"),
		IdleTimeoutMinutes: v.GetInt("CODESPACE_IDLE_TIMEOUT_MIN"),
		PollInterval:       time.Duration(v.GetInt("CODESPACE_POLL_INTERVAL_MS")) * time.Millisecond,
		PollAttempts:       v.GetInt("CODESPACE_POLL_ATTEMPTS"),
	}
}
