package errs

import "errors"

var (
	ProblemNotFound    = errors.New("problem not found")
	InvalidProblemFile = errors.New("invalid problem file")
)
