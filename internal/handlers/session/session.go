// Package session resolves the visitor session from the signed cookie.
package session

import (
	"context"
	"net/http"
	"time"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/domain"
)

const defaultCookieName = "session"

type ctxKey struct{}

// From returns the session the middleware attached to ctx. It never returns nil.
func From(ctx context.Context) *domain.Session {
	if s, ok := ctx.Value(ctxKey{}).(*domain.Session); ok && s != nil {
		return s
	}
	return domain.NewAnonymousSession()
}

func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

type Manager struct {
	codec  primary.SessionCodec
	cfg    config.SessionConfig
	logger primary.Logger
}

func NewManager(codec primary.SessionCodec, cfg *config.SessionConfig, logger primary.Logger) *Manager {
	c := *cfg
	if c.CookieName == "" {
		c.CookieName = defaultCookieName
	}
	if c.TTL <= 0 {
		c.TTL = time.Hour
	}
	return &Manager{codec: codec, cfg: c, logger: logger}
}

// Middleware attaches the cookie session to the request. Visitors without a
// valid cookie get a fresh anonymous session, issued as a cookie right away.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *domain.Session
		if c, err := r.Cookie(m.cfg.CookieName); err == nil && c.Value != "" {
			decoded, err := m.codec.Decode(r.Context(), c.Value)
			if err != nil {
				m.logger.Debug("Discarding invalid session cookie", "error", err)
			} else {
				sess = decoded
			}
		}
		if sess == nil {
			sess = domain.NewAnonymousSession()
			if err := m.Save(w, r, sess); err != nil {
				m.logger.Error("Failed to issue session cookie", "error", err)
			}
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	token, err := m.codec.Encode(r.Context(), sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, int(m.cfg.TTL/time.Second)))
	return nil
}

func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
