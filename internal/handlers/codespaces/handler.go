package codespaces

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/services/codespace"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/handlers/session"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type CreateRequest struct {
	ProblemID string `json:"problem_id"`
	Language  string `json:"language"`
}

type Handler struct {
	codespaceService codespace.ICodespaceService
	logger           primary.Logger
}

func NewHandler(codespaceService codespace.ICodespaceService, logger primary.Logger) *Handler {
	return &Handler{
		codespaceService: codespaceService,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/codespaces/create", h.Create).Methods("POST")
	router.HandleFunc("/codespaces/list", h.List).Methods("GET")
	router.HandleFunc("/codespaces/{problemId}/active", h.Active).Methods("GET")
	router.HandleFunc("/codespaces/{name}", h.Delete).Methods("DELETE")
}

// token returns the session's GitHub token, answering 401 when there is none
func token(w http.ResponseWriter, r *http.Request) (string, bool) {
	t := session.From(r.Context()).AccessToken
	if t == "" {
		response.Fail(w, errs.NotAuthenticated)
		return "", false
	}
	return t, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := token(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ProblemID) == "" {
		response.WriteError(w, response.ErrorMessage{
			Message:    "problem_id is required",
			StatusCode: http.StatusUnprocessableEntity,
		})
		return
	}

	url, err := h.codespaceService.Create(r.Context(), accessToken, req.ProblemID)
	if err != nil {
		h.logger.Error("Failed to create codespace", "problemId", req.ProblemID, "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string]string{"url": url})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := token(w, r)
	if !ok {
		return
	}
	list, err := h.codespaceService.List(r.Context(), accessToken)
	if err != nil {
		h.logger.Error("Failed to list codespaces", "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string][]*domain.Codespace{"codespaces": list})
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := token(w, r)
	if !ok {
		return
	}
	cs, err := h.codespaceService.Active(r.Context(), accessToken, mux.Vars(r)["problemId"])
	if err != nil {
		h.logger.Error("Failed to look up active codespace", "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string]*domain.Codespace{"codespace": cs})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := token(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	if err := h.codespaceService.Delete(r.Context(), accessToken, name); err != nil {
		h.logger.Warn("Failed to delete codespace", "name", name, "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string]bool{"success": true})
}
