package errs

import "errors"

var (
	WorkspaceSetup = errors.New("failed to prepare workspace")
	ProcessStart   = errors.New("failed to start process")
	ProcessWait    = errors.New("process wait failed")
)
