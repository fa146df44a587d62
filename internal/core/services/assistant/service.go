package assistant

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// IAssistantService answers questions about a problem using a hosted language model.
// Every method returns errs.AssistantUnavailable when no model is configured.
type IAssistantService interface {
	Chat(ctx context.Context, problemID string, req ChatRequest) (string, error)

	// ChatStream hands the answer to emit chunk by chunk
	ChatStream(ctx context.Context, problemID string, req ChatRequest, emit func(chunk string) error) error

	// Complete suggests the code to insert between before and after
	Complete(ctx context.Context, problemID, before, after string) (string, error)
}

type ChatRequest struct {
	Code    string
	Message string
	History []domain.ChatMessage
}
