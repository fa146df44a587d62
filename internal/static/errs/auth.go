package errs

import "errors"

var (
	GeneratingToken    = errors.New("error generating token")
	NotAuthenticated   = errors.New("not authenticated")
	InvalidSession     = errors.New("invalid session")
	TokenExchange      = errors.New("failed to get access token")
	NoAccessToken      = errors.New("no access token received")
	FetchUserInfo      = errors.New("failed to get user info")
	FailedToCreateUser = errors.New("failed to create user")
)
