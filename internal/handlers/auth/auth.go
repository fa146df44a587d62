package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/services/auth"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/handlers/session"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

type Handler struct {
	authService auth.IAuthService
	sessions    *session.Manager
	logger      primary.Logger
}

func NewHandler(authService auth.IAuthService, sessions *session.Manager, logger primary.Logger) *Handler {
	return &Handler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods("GET")
	router.HandleFunc("/auth/callback", h.Callback).Methods("GET")
	router.HandleFunc("/auth/logout", h.Logout).Methods("GET")
}

// Login redirects to the provider's authorize page with a fresh state
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.authService.LoginURL(state), http.StatusFound)
}

func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || subtle.ConstantTimeCompare([]byte(c.Value), []byte(q.Get("state"))) != 1 {
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid oauth state",
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth", MaxAge: -1})

	sess, err := h.authService.Login(r.Context(), q.Get("code"), session.From(r.Context()))
	if err != nil {
		h.logger.Warn("Login failed", "provider", h.authService.ProviderName(), "error", err)
		response.Fail(w, err)
		return
	}
	if err := h.sessions.Save(w, r, sess); err != nil {
		h.logger.Error("Failed to encode session", "error", err)
		response.Fail(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
