package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const (
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	acceptHeader   = "application/vnd.github+json"
)

var _ secondary.GithubAPI = (*Client)(nil)

// Client talks to the GitHub REST API with the caller's OAuth token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     primary.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger primary.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// authorized wraps the base client so every request carries accessToken as a bearer token.
func (c *Client) authorized(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
}

// do sends the request and decodes a JSON body into out when the status is one of want.
func (c *Client) do(ctx context.Context, accessToken, method, path string, body, out interface{}, want ...int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.authorized(ctx, accessToken).Do(req)
	if err != nil {
		return fmt.Errorf("github request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	ok := false
	for _, status := range want {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		apiErr := newAPIError(resp)
		c.logger.Warn("GitHub API error", "method", method, "path", path, "status", apiErr.Status, "message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.GithubUser, error) {
	var user domain.GithubUser
	if err := c.do(ctx, accessToken, http.MethodGet, "/user", nil, &user, http.StatusOK); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.FetchUserInfo, err)
	}
	return &user, nil
}

func (c *Client) GetRepository(ctx context.Context, accessToken, fullName string) (*domain.Repository, error) {
	var repo domain.Repository
	if err := c.do(ctx, accessToken, http.MethodGet, "/repos/"+fullName, nil, &repo, http.StatusOK); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.RepositoryNotFound, err)
	}
	return &repo, nil
}

func (c *Client) ListMachines(ctx context.Context, accessToken, fullName string) ([]domain.Machine, error) {
	var payload struct {
		Machines []domain.Machine `json:"machines"`
	}
	if err := c.do(ctx, accessToken, http.MethodGet, "/repos/"+fullName+"/codespaces/machines", nil, &payload, http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Machines, nil
}

func (c *Client) CreateCodespace(ctx context.Context, accessToken string, spec domain.CodespaceSpec) (*domain.Codespace, error) {
	var cs domain.Codespace
	// 202 means GitHub queued the creation; the body still names the codespace
	if err := c.do(ctx, accessToken, http.MethodPost, "/user/codespaces", spec, &cs, http.StatusCreated, http.StatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to create codespace: %w", err)
	}
	return &cs, nil
}

func (c *Client) GetCodespace(ctx context.Context, accessToken, name string) (*domain.Codespace, error) {
	var cs domain.Codespace
	if err := c.do(ctx, accessToken, http.MethodGet, "/user/codespaces/"+url.PathEscape(name), nil, &cs, http.StatusOK); err != nil {
		return nil, mapCodespaceError(err)
	}
	return &cs, nil
}

func (c *Client) ListCodespaces(ctx context.Context, accessToken string) ([]*domain.Codespace, error) {
	var payload struct {
		Codespaces []*domain.Codespace `json:"codespaces"`
	}
	if err := c.do(ctx, accessToken, http.MethodGet, "/user/codespaces?per_page=100", nil, &payload, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list codespaces: %w", err)
	}
	if payload.Codespaces == nil {
		payload.Codespaces = []*domain.Codespace{}
	}
	return payload.Codespaces, nil
}

func (c *Client) DeleteCodespace(ctx context.Context, accessToken, name string) error {
	err := c.do(ctx, accessToken, http.MethodDelete, "/user/codespaces/"+url.PathEscape(name), nil, nil,
		http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	if err != nil {
		return mapCodespaceError(err)
	}
	return nil
}

func mapCodespaceError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", errs.CodespaceNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", errs.CodespaceForbidden, err)
		}
	}
	return err
}
