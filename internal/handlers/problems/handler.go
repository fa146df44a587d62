package problems

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/services/completion"
	"gitlab.com/llmeet.net/internal/core/services/problem"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/handlers/session"
)

type Handler struct {
	problemService    problem.IProblemService
	completionService completion.ICompletionService
	logger            primary.Logger
}

func NewHandler(problemService problem.IProblemService, completionService completion.ICompletionService, logger primary.Logger) *Handler {
	return &Handler{
		problemService:    problemService,
		completionService: completionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/problems", h.ListProblems).Methods("GET")
	router.HandleFunc("/problems/{problemId}", h.GetProblem).Methods("GET")
	router.HandleFunc("/problems/{problemId}/complete", h.MarkComplete).Methods("POST")
	router.HandleFunc("/problems/{problemId}/complete", h.UnmarkComplete).Methods("DELETE")
	router.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
}

// ListProblems filters by difficulty, topic and language; hide_completed
// only has an effect for logged-in users.
func (h *Handler) ListProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hide, _ := strconv.ParseBool(q.Get("hide_completed"))
	filter := domain.ProblemFilter{
		Difficulty:    q.Get("difficulty"),
		Topic:         q.Get("topic"),
		Language:      q.Get("language"),
		HideCompleted: hide,
	}

	sess := session.From(r.Context())
	found, err := h.problemService.List(r.Context(), sess.UserID, filter)
	if err != nil {
		h.logger.Error("Failed to list problems", "error", err)
		response.Fail(w, err)
		return
	}

	out := make([]ProblemSummary, 0, len(found))
	for _, p := range found {
		out = append(out, summarize(p))
	}
	response.WriteSuccess(w, ListResponse{
		Problems: out,
		User:     sess.User(),
		LoggedIn: sess.LoggedIn(),
	})
}

func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	p, err := h.problemService.Get(r.Context(), mux.Vars(r)["problemId"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, detail(p))
}

func (h *Handler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["problemId"]
	if err := h.completionService.Mark(r.Context(), session.From(r.Context()), id); err != nil {
		h.logger.Warn("Failed to mark problem completed", "problemId", id, "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string]bool{"success": true})
}

func (h *Handler) UnmarkComplete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["problemId"]
	if err := h.completionService.Unmark(r.Context(), session.From(r.Context()), id); err != nil {
		h.logger.Warn("Failed to unmark problem", "problemId", id, "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, map[string]bool{"success": true})
}

// Dashboard sends anonymous visitors back to the problem list
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.From(r.Context())
	if !sess.LoggedIn() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	d, err := h.completionService.Dashboard(r.Context(), sess)
	if err != nil {
		h.logger.Error("Failed to build dashboard", "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, d)
}
