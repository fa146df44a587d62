package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/services/submission"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/handlers/session"
)

const maxCodeBytes = 1 << 20

type SubmitRequest struct {
	Code string `json:"code"`
}

type TestResult struct {
	Passed  bool           `json:"passed"`
	Outcome domain.Outcome `json:"outcome"`
	Message string         `json:"message"`
	Hidden  bool           `json:"hidden"`
}

type SubmitResponse struct {
	SubmissionID string       `json:"submission_id"`
	AllPassed    bool         `json:"all_passed"`
	TestResults  []TestResult `json:"test_results"`
}

type Handler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submit/{problemId}", h.Submit).Methods("POST")
	router.HandleFunc("/history/{problemId}", h.History).Methods("GET")
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCodeBytes)).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	problemID := mux.Vars(r)["problemId"]
	record, err := h.submissionService.Submit(r.Context(), session.From(r.Context()), problemID, req.Code)
	if err != nil {
		response.Fail(w, err)
		return
	}

	results := make([]TestResult, 0, len(record.Results))
	for _, v := range record.Results {
		results = append(results, TestResult{
			Passed:  v.Passed(),
			Outcome: v.Outcome,
			Message: v.Message,
			Hidden:  v.IsHidden,
		})
	}
	response.WriteSuccess(w, SubmitResponse{
		SubmissionID: record.ID,
		AllPassed:    record.Passed,
		TestResults:  results,
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.submissionService.History(r.Context(), session.From(r.Context()), mux.Vars(r)["problemId"])
	if err != nil {
		h.logger.Error("Failed to load history", "error", err)
		response.Fail(w, err)
		return
	}
	response.WriteSuccess(w, records)
}
