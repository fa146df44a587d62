package secondary

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

type ScriptRunner interface {
	// Run writes the script into a fresh workspace and executes it in its own process.
	// A timeout is reported through ExecResult.TimedOut, not as an error.
	Run(ctx context.Context, req domain.ExecRequest) (*domain.ExecResult, error)
}
