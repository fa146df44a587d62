package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	authsvc "gitlab.com/llmeet.net/internal/core/services/auth"
	assistantsvc "gitlab.com/llmeet.net/internal/core/services/assistant"
	"gitlab.com/llmeet.net/internal/core/services/codespace"
	"gitlab.com/llmeet.net/internal/core/services/completion"
	"gitlab.com/llmeet.net/internal/core/services/problem"
	"gitlab.com/llmeet.net/internal/core/services/submission"
	"gitlab.com/llmeet.net/internal/handlers/assistant"
	"gitlab.com/llmeet.net/internal/handlers/auth"
	"gitlab.com/llmeet.net/internal/handlers/codespaces"
	"gitlab.com/llmeet.net/internal/handlers/problems"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/handlers/session"
	"gitlab.com/llmeet.net/internal/handlers/submissions"
)

// Services is everything the HTTP layer calls into
type Services struct {
	Auth       authsvc.IAuthService
	Problems   problem.IProblemService
	Completion completion.ICompletionService
	Submission submission.ISubmissionService
	Codespaces codespace.ICodespaceService
	Assistant  assistantsvc.IAssistantService
}

// NewRouter wires every route behind the recover, logging and session middlewares.
func NewRouter(svc Services, sessions *session.Manager, logger primary.Logger) *mux.Router {
	r := mux.NewRouter()
	mw := NewMiddlewareProvider(logger)
	r.Use(mw.RecoverMiddleware, mw.LoggingMiddleware, sessions.Middleware)

	r.HandleFunc("/healthz", Health).Methods("GET")
	auth.NewHandler(svc.Auth, sessions, logger).RegisterRoutes(r)
	problems.NewHandler(svc.Problems, svc.Completion, logger).RegisterRoutes(r)
	submissions.NewHandler(svc.Submission, logger).RegisterRoutes(r)
	codespaces.NewHandler(svc.Codespaces, logger).RegisterRoutes(r)
	assistant.NewHandler(svc.Assistant, logger).RegisterRoutes(r)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, response.ErrorMessage{Message: "not found", StatusCode: http.StatusNotFound})
	})
	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, map[string]string{"status": "ok"})
}
