package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// LanguageModel is a hosted text-generation model
type LanguageModel interface {
	Generate(ctx context.Context, contents []domain.ChatMessage) (string, error)

	// GenerateStream calls emit for every text chunk as it arrives
	GenerateStream(ctx context.Context, contents []domain.ChatMessage, emit func(chunk string) error) error
}
