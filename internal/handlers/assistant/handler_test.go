package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/core/services/assistant"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type fakeAssistant struct {
	answer  string
	chunks  []string
	err     error
	gotReq  assistant.ChatRequest
	gotCode [2]string
}

func (f *fakeAssistant) Chat(_ context.Context, _ string, req assistant.ChatRequest) (string, error) {
	f.gotReq = req
	return f.answer, f.err
}

func (f *fakeAssistant) ChatStream(_ context.Context, _ string, req assistant.ChatRequest, emit func(string) error) error {
	f.gotReq = req
	for _, c := range f.chunks {
		if err := emit(c); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeAssistant) Complete(_ context.Context, _ string, before, after string) (string, error) {
	f.gotCode = [2]string{before, after}
	return f.answer, f.err
}

func post(svc *fakeAssistant, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	NewHandler(svc, logging.NewNopLogger()).RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestChat(t *testing.T) {
	svc := &fakeAssistant{answer: "use a dict"}
	rec := post(svc, "/chat/two-sum", `{"code":"x = 1","message":"hint?","history":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"response":"use a dict","error":null}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if svc.gotReq.Message != "hint?" || svc.gotReq.Code != "x = 1" || len(svc.gotReq.History) != 1 {
		t.Fatalf("request not forwarded: %+v", svc.gotReq)
	}
}

func TestChatErrors(t *testing.T) {
	rec := post(&fakeAssistant{err: errs.AssistantUnavailable}, "/chat/two-sum", `{"message":"hi"}`)
	var body ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || body.Response != nil || body.Error == nil || *body.Error != errs.AssistantUnavailable.Error() {
		t.Fatalf("unavailable assistant should answer with an error message, got %d %+v", rec.Code, body)
	}

	if rec := post(&fakeAssistant{err: errs.ProblemNotFound}, "/chat/x", `{"message":"hi"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := post(&fakeAssistant{err: errs.EmptyMessage}, "/chat/x", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := post(&fakeAssistant{}, "/chat/x", `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatStream(t *testing.T) {
	rec := post(&fakeAssistant{chunks: []string{"Hello", " line one\nline two"}}, "/chat/two-sum/stream", `{"message":"hi"}`)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "text/event-stream" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	want := "data: Hello\n\ndata:  line one\ndata: line two\n\n"
	if rec.Body.String() != want {
		t.Fatalf("expected %q, got %q", want, rec.Body.String())
	}
}

func TestChatStreamErrors(t *testing.T) {
	rec := post(&fakeAssistant{chunks: []string{"partial"}, err: errors.New("quota")}, "/chat/two-sum/stream", `{"message":"hi"}`)
	if !strings.HasSuffix(rec.Body.String(), "data: [ERROR] quota\n\n") {
		t.Fatalf("expected trailing error chunk, got %q", rec.Body.String())
	}

	rec = post(&fakeAssistant{err: errs.AssistantUnavailable}, "/chat/two-sum/stream", `{"message":"hi"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "data: [ERROR] "+errs.AssistantUnavailable.Error()+"\n\n" {
		t.Fatalf("expected a single error chunk, got %d %q", rec.Code, rec.Body.String())
	}

	if rec := post(&fakeAssistant{err: errs.ProblemNotFound}, "/chat/missing/stream", `{"message":"hi"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before the stream starts, got %d", rec.Code)
	}
}

func TestComplete(t *testing.T) {
	svc := &fakeAssistant{answer: "return a + b"}
	rec := post(svc, "/complete/two-sum", `{"before":"def add(a, b):\n    ","after":""}`)
	if strings.TrimSpace(rec.Body.String()) != `{"completion":"return a + b","error":null}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if svc.gotCode[0] != "def add(a, b):\n    " {
		t.Fatalf("before not forwarded: %q", svc.gotCode[0])
	}

	rec = post(&fakeAssistant{err: errors.New("boom")}, "/complete/two-sum", `{}`)
	if !strings.Contains(rec.Body.String(), `"error":"boom"`) || !strings.Contains(rec.Body.String(), `"completion":null`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
