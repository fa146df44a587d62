package codespaces

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
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/handlers/session"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type fakeCodespaces struct {
	createErr  error
	deleteErr  error
	list       []*domain.Codespace
	gotToken   string
	gotProblem string
}

func (f *fakeCodespaces) Create(_ context.Context, token, problemID string) (string, error) {
	f.gotToken, f.gotProblem = token, problemID
	if f.createErr != nil {
		return "", f.createErr
	}
	return "https://cs.github.dev", nil
}

func (f *fakeCodespaces) List(context.Context, string) ([]*domain.Codespace, error) {
	return f.list, nil
}

func (f *fakeCodespaces) Active(_ context.Context, _, problemID string) (*domain.Codespace, error) {
	for _, cs := range f.list {
		if cs.ProblemID == problemID {
			return cs, nil
		}
	}
	return nil, nil
}

func (f *fakeCodespaces) Delete(context.Context, string, string) error { return f.deleteErr }

func do(svc *fakeCodespaces, method, target, body, accessToken string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	NewHandler(svc, logging.NewNopLogger()).RegisterRoutes(r)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	sess := domain.NewAnonymousSession()
	sess.AccessToken = accessToken
	req = req.WithContext(session.WithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequiresToken(t *testing.T) {
	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/codespaces/create"},
		{http.MethodGet, "/codespaces/list"},
		{http.MethodGet, "/codespaces/two-sum/active"},
		{http.MethodDelete, "/codespaces/cs-1"},
	} {
		if rec := do(&fakeCodespaces{}, tc.method, tc.target, `{"problem_id":"x"}`, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.target, rec.Code)
		}
	}
}

func TestCreate(t *testing.T) {
	svc := &fakeCodespaces{}
	rec := do(svc, http.MethodPost, "/codespaces/create", `{"problem_id":"two-sum"}`, "gho_x")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "https://cs.github.dev") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if svc.gotToken != "gho_x" || svc.gotProblem != "two-sum" {
		t.Fatalf("token or problem not forwarded")
	}

	if rec := do(svc, http.MethodPost, "/codespaces/create", `{}`, "gho_x"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing problem_id: expected 422, got %d", rec.Code)
	}

	cases := []struct {
		err  error
		want int
	}{
		{errs.ProblemNotFound, http.StatusNotFound},
		{errs.RepositoryNoBranch, http.StatusInternalServerError},
		{errs.CodespaceTimeout, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if rec := do(&fakeCodespaces{createErr: tc.err}, http.MethodPost, "/codespaces/create", `{"problem_id":"p"}`, "t"); rec.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestListAndActive(t *testing.T) {
	svc := &fakeCodespaces{list: []*domain.Codespace{{Name: "cs-1", ProblemID: "two-sum"}}}

	rec := do(svc, http.MethodGet, "/codespaces/list", "", "t")
	var list map[string][]*domain.Codespace
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil || len(list["codespaces"]) != 1 {
		t.Fatalf("unexpected list %s (err %v)", rec.Body.String(), err)
	}

	rec = do(svc, http.MethodGet, "/codespaces/other/active", "", "t")
	if strings.TrimSpace(rec.Body.String()) != `{"codespace":null}` {
		t.Fatalf("expected null codespace, got %s", rec.Body.String())
	}
	rec = do(svc, http.MethodGet, "/codespaces/two-sum/active", "", "t")
	if !strings.Contains(rec.Body.String(), `"name":"cs-1"`) {
		t.Fatalf("expected cs-1, got %s", rec.Body.String())
	}
}

func TestDelete(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{errs.CodespaceNotFound, http.StatusNotFound},
		{errs.CodespaceForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if rec := do(&fakeCodespaces{deleteErr: tc.err}, http.MethodDelete, "/codespaces/cs-1", "", "t"); rec.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}
