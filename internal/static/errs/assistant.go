package errs

import "errors"

var (
	AssistantUnavailable = errors.New("assistant is not configured")
	EmptyMessage         = errors.New("message is required")
)
