package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/llmeet.net/internal/adapter/crypto"
	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/domain"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	cfg := &config.SessionConfig{Secret: "test-secret"}
	codec, err := crypto.NewSessionCodec(cfg)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return NewManager(codec, cfg, logging.NewNopLogger())
}

func captureSession(got **domain.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = From(r.Context())
	})
}

func TestMiddlewareIssuesAnonymousSession(t *testing.T) {
	m := newManager(t)
	var got *domain.Session

	rec := httptest.NewRecorder()
	m.Middleware(captureSession(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.ID == "" || got.LoggedIn() {
		t.Fatalf("expected anonymous session, got %+v", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" || !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax")
	}
}

func TestMiddlewareReadsCookie(t *testing.T) {
	m := newManager(t)
	uid := int64(9)
	want := &domain.Session{ID: "abc123", UserID: &uid, Login: "octocat", AccessToken: "gho_x"}

	rec := httptest.NewRecorder()
	if err := m.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	var got *domain.Session
	rec = httptest.NewRecorder()
	m.Middleware(captureSession(&got)).ServeHTTP(rec, req)

	if got.ID != "abc123" || !got.LoggedIn() || *got.UserID != 9 || got.AccessToken != "gho_x" {
		t.Fatalf("unexpected session %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("a valid session must not be reissued")
	}
}

func TestMiddlewareReplacesInvalidCookie(t *testing.T) {
	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "forged.jwt.value"})

	var got *domain.Session
	rec := httptest.NewRecorder()
	m.Middleware(captureSession(&got)).ServeHTTP(rec, req)

	if got.LoggedIn() {
		t.Fatalf("invalid cookie must yield an anonymous session")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected a replacement cookie")
	}
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	newManager(t).Clear(rec)
	c := rec.Result().Cookies()
	if len(c) != 1 || c[0].MaxAge >= 0 || c[0].Value != "" {
		t.Fatalf("expected an expiring cookie, got %+v", c)
	}
}

func TestFromWithoutMiddleware(t *testing.T) {
	if s := From(context.Background()); s == nil || s.LoggedIn() {
		t.Fatalf("expected anonymous fallback, got %+v", s)
	}
}
