package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/services/assistant"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/handlers/response"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const errorChunkPrefix = "[ERROR] "

type ChatRequest struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

type ChatResponse struct {
	Response *string `json:"response"`
	Error    *string `json:"error"`
}

type CompleteRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type CompleteResponse struct {
	Completion *string `json:"completion"`
	Error      *string `json:"error"`
}

type Handler struct {
	assistantService assistant.IAssistantService
	logger           primary.Logger
}

func NewHandler(assistantService assistant.IAssistantService, logger primary.Logger) *Handler {
	return &Handler{
		assistantService: assistantService,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chat/{problemId}", h.Chat).Methods("POST")
	router.HandleFunc("/chat/{problemId}/stream", h.ChatStream).Methods("POST")
	router.HandleFunc("/complete/{problemId}", h.Complete).Methods("POST")
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return false
	}
	return true
}

// requestError reports errors that are the caller's fault; those get a
// status code, everything else is returned in the body.
func requestError(err error) bool {
	return errors.Is(err, errs.ProblemNotFound) || errors.Is(err, errs.EmptyMessage)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decode(w, r, &req) {
		return
	}
	answer, err := h.assistantService.Chat(r.Context(), mux.Vars(r)["problemId"], assistant.ChatRequest(req))
	if err != nil {
		if requestError(err) {
			response.Fail(w, err)
			return
		}
		msg := err.Error()
		response.WriteSuccess(w, ChatResponse{Error: &msg})
		return
	}
	response.WriteSuccess(w, ChatResponse{Response: &answer})
}

// ChatStream answers with text/event-stream. A failure after the stream has
// started is sent as a last "[ERROR] ..." chunk.
func (h *Handler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decode(w, r, &req) {
		return
	}

	flusher, _ := w.(http.Flusher)
	started := false
	send := func(chunk string) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := fmt.Fprint(w, event(chunk)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	problemID := mux.Vars(r)["problemId"]
	err := h.assistantService.ChatStream(r.Context(), problemID, assistant.ChatRequest(req), send)
	if err == nil {
		return
	}
	if !started && requestError(err) {
		response.Fail(w, err)
		return
	}
	if r.Context().Err() != nil {
		return
	}
	h.logger.Warn("Chat stream ended with error", "problemId", problemID, "error", err)
	_ = send(errorChunkPrefix + err.Error())
}

// event frames chunk as one server-sent event, one data line per text line
func event(chunk string) string {
	var sb strings.Builder
	for _, line := range strings.Split(chunk, "\n") {
		sb.WriteString("data: ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.assistantService.Complete(r.Context(), mux.Vars(r)["problemId"], req.Before, req.After)
	if err != nil {
		if requestError(err) {
			response.Fail(w, err)
			return
		}
		msg := err.Error()
		response.WriteSuccess(w, CompleteResponse{Error: &msg})
		return
	}
	response.WriteSuccess(w, CompleteResponse{Completion: &out})
}
