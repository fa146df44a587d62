package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/adapter/problemfile"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type fakeModel struct {
	reply   string
	chunks  []string
	err     error
	lastReq []domain.ChatMessage
}

func (m *fakeModel) Generate(_ context.Context, contents []domain.ChatMessage) (string, error) {
	m.lastReq = contents
	return m.reply, m.err
}

func (m *fakeModel) GenerateStream(_ context.Context, contents []domain.ChatMessage, emit func(string) error) error {
	m.lastReq = contents
	for _, c := range m.chunks {
		if err := emit(c); err != nil {
			return err
		}
	}
	return m.err
}

func newService(t *testing.T, model *fakeModel) *AssistantService {
	t.Helper()
	repo, err := problemfile.NewFromProblems([]*domain.Problem{{
		ID:          "sum",
		Title:       "Sum",
		Description: "Add two numbers",
		Type:        "bug",
		Priority:    "P1",
		Tests: []domain.TestCase{
			{InputExpression: "add(1, 2)", ExpectedExpression: "3"},
			{InputExpression: "add(40, 2)", ExpectedExpression: "42", IsHidden: true},
			{InputExpression: "add(-1, 1)", ExpectedExpression: "0"},
		},
	}})
	if err != nil {
		t.Fatalf("problem repo: %v", err)
	}
	if model == nil {
		return NewAssistantService(repo, nil, logging.NewNopLogger())
	}
	return NewAssistantService(repo, model, logging.NewNopLogger())
}

func TestChatBuildsConversation(t *testing.T) {
	model := &fakeModel{reply: "try a loop"}
	svc := newService(t, model)

	got, err := svc.Chat(context.Background(), "sum", ChatRequest{
		Code:    "def add(a, b): pass",
		Message: "help",
		History: []domain.ChatMessage{{Role: "user", Content: "hi"}, {Role: "model", Content: "hello"}, {Role: "system", Content: "odd"}},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got != "try a loop" {
		t.Fatalf("unexpected answer %q", got)
	}

	msgs := model.lastReq
	if len(msgs) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(msgs))
	}
	if msgs[1].Role != domain.RoleModel || msgs[1].Content != contextAck {
		t.Fatalf("expected acknowledgment turn, got %+v", msgs[1])
	}
	if msgs[4].Role != domain.RoleUser {
		t.Fatalf("unknown history role should become user, got %q", msgs[4].Role)
	}
	if last := msgs[5]; last.Role != domain.RoleUser || last.Content != "help" {
		t.Fatalf("unexpected last message %+v", last)
	}

	prompt := msgs[0].Content
	for _, want := range []string{"## Problem: Sum", "Test 1: add(1, 2) → 3", "Test 2: add(-1, 1) → 0", "(+ 1 hidden tests)", "def add(a, b): pass"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "add(40, 2)") {
		t.Fatalf("prompt leaks a hidden test:\n%s", prompt)
	}
}

func TestChatErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := newService(t, nil).Chat(ctx, "sum", ChatRequest{Message: "hi"}); !errors.Is(err, errs.AssistantUnavailable) {
		t.Fatalf("expected AssistantUnavailable, got %v", err)
	}
	if _, err := newService(t, &fakeModel{}).Chat(ctx, "sum", ChatRequest{Message: "  "}); !errors.Is(err, errs.EmptyMessage) {
		t.Fatalf("expected EmptyMessage, got %v", err)
	}
	if _, err := newService(t, &fakeModel{}).Chat(ctx, "nope", ChatRequest{Message: "hi"}); !errors.Is(err, errs.ProblemNotFound) {
		t.Fatalf("expected ProblemNotFound, got %v", err)
	}
	boom := errors.New("quota exceeded")
	if _, err := newService(t, &fakeModel{err: boom}).Chat(ctx, "sum", ChatRequest{Message: "hi"}); !errors.Is(err, boom) {
		t.Fatalf("expected model error, got %v", err)
	}
}

func TestChatStream(t *testing.T) {
	svc := newService(t, &fakeModel{chunks: []string{"a", "b", "c"}})

	var got []string
	err := svc.ChatStream(context.Background(), "sum", ChatRequest{Message: "hi"}, func(c string) error {
		got = append(got, c)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if strings.Join(got, "") != "abc" {
		t.Fatalf("unexpected chunks %q", got)
	}
}

func TestComplete(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "plain", reply: "  return a + b\n", want: "return a + b"},
		{name: "fenced", reply: "```python\nreturn a + b\n```", want: "return a + b"},
		{name: "unterminated fence", reply: "```\nx = 1\ny = 2", want: "x = 1\ny = 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &fakeModel{reply: tc.reply}
			got, err := newService(t, model).Complete(context.Background(), "sum", "def add(a, b):\n    ", "")
			if err != nil {
				t.Fatalf("complete: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if len(model.lastReq) != 1 || !strings.Contains(model.lastReq[0].Content, "## Problem Context: Sum") {
				t.Fatalf("unexpected completion prompt %+v", model.lastReq)
			}
		})
	}
}
