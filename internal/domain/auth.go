package domain

type Provider string

const (
	ProviderGithub Provider = "github"
)

// Session is the state carried by the signed session cookie.
// Anonymous visitors have a session id but no user.
type Session struct {
	ID          string  `json:"sid"`
	UserID      *int64  `json:"user_id,omitempty"`
	Login       string  `json:"login,omitempty"`
	Name        *string `json:"name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	AccessToken string  `json:"-"`
}

// NewAnonymousSession creates a session with a fresh id and no user
func NewAnonymousSession() *Session {
	return &Session{ID: ShortID() + ShortID()}
}

// LoggedIn reports whether the session belongs to an authenticated user
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != nil
}

// SessionUser is the public view of the session owner
type SessionUser struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// User returns the public view of the session owner, or nil when anonymous.
func (s *Session) User() *SessionUser {
	if !s.LoggedIn() {
		return nil
	}
	return &SessionUser{
		ID:        *s.UserID,
		Login:     s.Login,
		Name:      s.Name,
		AvatarURL: s.AvatarURL,
	}
}
