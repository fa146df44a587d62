package judge

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/llmeet.net/internal/static/errs"
)

type ErrorType string

const (
	ErrWorkspace ErrorType = "WORKSPACE_ERROR"
	ErrCmdStart  ErrorType = "COMMAND_START_ERROR"
	ErrCmdWait   ErrorType = "COMMAND_WAIT_ERROR"
	ErrCancelled ErrorType = "CANCELLED"
	ErrInternal  ErrorType = "INTERNAL_JUDGE_ERROR"
)

// Error is an infrastructure failure of the judge itself. Candidate code never produces one.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (type: %s)", e.Message, e.Cause.Error(), e.Type)
	}
	return fmt.Sprintf("%s (type: %s)", e.Message, e.Type)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(cause error) *Error {
	var judgeErr *Error
	if errors.As(cause, &judgeErr) {
		return judgeErr
	}

	switch {
	case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
		return &Error{Type: ErrCancelled, Message: "judging was cancelled", Cause: cause}
	case errors.Is(cause, errs.WorkspaceSetup):
		return &Error{Type: ErrWorkspace, Message: "failed to prepare workspace", Cause: cause}
	case errors.Is(cause, errs.ProcessStart):
		return &Error{Type: ErrCmdStart, Message: "failed to start interpreter", Cause: cause}
	case errors.Is(cause, errs.ProcessWait):
		return &Error{Type: ErrCmdWait, Message: "interpreter wait failed", Cause: cause}
	default:
		return &Error{Type: ErrInternal, Message: "unexpected judge failure", Cause: cause}
	}
}
