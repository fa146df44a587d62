// Package gemini is a small client for the Gemini generateContent REST API.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	maxSSELine     = 4 * 1024 * 1024
)

var _ secondary.LanguageModel = (*Client)(nil)

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gemini: http %d: %s", e.Status, e.Body)
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient returns errs.AssistantUnavailable when no API key is configured.
func NewClient(cfg *config.GeminiConfig, httpClient *http.Client, logger primary.Logger) (*Client, error) {
	if cfg.ApiKey == "" {
		return nil, errs.AssistantUnavailable
	}
	c := &Client{
		apiKey:     cfg.ApiKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return c, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text    string `json:"text"`
				Thought bool   `json:"thought"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func buildRequest(messages []domain.ChatMessage) generateRequest {
	req := generateRequest{Contents: make([]content, 0, len(messages))}
	for _, m := range messages {
		role := m.Role
		if role != domain.RoleModel {
			role = domain.RoleUser
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	return req
}

func (c *Client) post(ctx context.Context, method string, messages []domain.ChatMessage) (*http.Response, error) {
	payload, err := json.Marshal(buildRequest(messages))
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:%s", c.baseURL, c.model, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		c.logger.Warn("Gemini request rejected", "status", resp.StatusCode)
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

func (c *Client) Generate(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	resp, err := c.post(ctx, "generateContent", messages)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("gemini: parse response: %w", err)
	}
	return parsed.text(), nil
}

// GenerateStream reads the SSE stream and hands every non-empty text delta to emit.
// An error from emit stops the stream and is returned as is.
func (c *Client) GenerateStream(ctx context.Context, messages []domain.ChatMessage, emit func(chunk string) error) error {
	resp, err := c.post(ctx, "streamGenerateContent?alt=sse", messages)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELine)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.logger.Debug("Skipping unparsable stream chunk", "error", err)
			continue
		}
		if text := chunk.text(); text != "" {
			if err := emit(text); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("gemini: read stream: %w", err)
	}
	return nil
}
