package problem

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/adapter/problemfile"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type fakeCompletions struct {
	done map[int64][]string
	err  error
}

func (f *fakeCompletions) Mark(context.Context, int64, string) error   { return nil }
func (f *fakeCompletions) Unmark(context.Context, int64, string) error { return nil }

func (f *fakeCompletions) List(_ context.Context, userID int64) ([]*domain.CompletedProblem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.CompletedProblem
	for _, id := range f.done[userID] {
		out = append(out, &domain.CompletedProblem{UserID: userID, ProblemID: id})
	}
	return out, nil
}

func newService(t *testing.T, completions *fakeCompletions) *ProblemService {
	t.Helper()
	repo, err := problemfile.NewFromProblems([]*domain.Problem{
		{ID: "a", Difficulty: "Easy", Language: "python", Topics: []string{"arrays"}, IsActive: true},
		{ID: "b", Difficulty: "Medium", Language: "python", Topics: []string{"strings", "parsing"}, IsActive: true},
		{ID: "c", Difficulty: "Easy", Language: "go", Topics: []string{"arrays"}, IsActive: true},
		{ID: "d", Difficulty: "Hard", Language: "python", IsActive: false},
	})
	if err != nil {
		t.Fatalf("problem repo: %v", err)
	}
	return NewProblemService(repo, completions, logging.NewNopLogger())
}

func ids(problems []*domain.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.ID)
	}
	return out
}

func TestList(t *testing.T) {
	user := int64(1)
	svc := newService(t, &fakeCompletions{done: map[int64][]string{1: {"a"}}})

	cases := []struct {
		name   string
		userID *int64
		filter domain.ProblemFilter
		want   []string
	}{
		{name: "all active", filter: domain.ProblemFilter{}, want: []string{"a", "b", "c"}},
		{name: "difficulty", filter: domain.ProblemFilter{Difficulty: "easy"}, want: []string{"a", "c"}},
		{name: "topic", filter: domain.ProblemFilter{Topic: "parsing"}, want: []string{"b"}},
		{name: "language", filter: domain.ProblemFilter{Language: "go"}, want: []string{"c"}},
		{name: "unknown value", filter: domain.ProblemFilter{Topic: "graphs"}, want: []string{}},
		{name: "hide completed anonymous", filter: domain.ProblemFilter{HideCompleted: true}, want: []string{"a", "b", "c"}},
		{name: "hide completed", userID: &user, filter: domain.ProblemFilter{HideCompleted: true}, want: []string{"b", "c"}},
		{name: "combined", userID: &user, filter: domain.ProblemFilter{Difficulty: "Easy", HideCompleted: true}, want: []string{"c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tc.userID, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, gotIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, gotIDs)
				}
			}
		})
	}
}

func TestListCompletionFailure(t *testing.T) {
	user := int64(1)
	boom := errors.New("db down")
	svc := newService(t, &fakeCompletions{err: boom})
	if _, err := svc.List(context.Background(), &user, domain.ProblemFilter{HideCompleted: true}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	svc := newService(t, &fakeCompletions{})
	p, err := svc.Get(context.Background(), "d")
	if err != nil || p.ID != "d" {
		t.Fatalf("inactive problems stay reachable by id: %v", err)
	}
	if _, err := svc.Get(context.Background(), "zzz"); !errors.Is(err, errs.ProblemNotFound) {
		t.Fatalf("expected ProblemNotFound, got %v", err)
	}
}
