package primary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// SessionCodec turns a session into a signed cookie value and back
type SessionCodec interface {
	Encode(ctx context.Context, session *domain.Session) (string, error)
	Decode(ctx context.Context, token string) (*domain.Session, error)
}
