package errs

import "errors"

var (
	RepositoryNotFound = errors.New("failed to get repository info")
	RepositoryNoBranch = errors.New("repository has no branches; initialize it with at least one commit")
	CodespaceNotFound  = errors.New("codespace not found")
	CodespaceForbidden = errors.New("not allowed to access codespace")
	CodespaceTimeout   = errors.New("codespace creation timed out")
)
