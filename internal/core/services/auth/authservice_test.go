package auth

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

type fakeIdentity struct {
	token string
	err   error
}

func (f fakeIdentity) AuthCodeURL(state string) string { return "https://github.test/authorize?state=" + state }

func (f fakeIdentity) Exchange(context.Context, string) (string, error) { return f.token, f.err }

type fakeGithub struct {
	user *domain.GithubUser
	err  error
}

func (f fakeGithub) GetUser(context.Context, string) (*domain.GithubUser, error) { return f.user, f.err }
func (f fakeGithub) GetRepository(context.Context, string, string) (*domain.Repository, error) {
	return nil, nil
}
func (f fakeGithub) ListMachines(context.Context, string, string) ([]domain.Machine, error) {
	return nil, nil
}
func (f fakeGithub) CreateCodespace(context.Context, string, domain.CodespaceSpec) (*domain.Codespace, error) {
	return nil, nil
}
func (f fakeGithub) GetCodespace(context.Context, string, string) (*domain.Codespace, error) {
	return nil, nil
}
func (f fakeGithub) ListCodespaces(context.Context, string) ([]*domain.Codespace, error) {
	return nil, nil
}
func (f fakeGithub) DeleteCodespace(context.Context, string, string) error { return nil }

type memUsers struct {
	byGithub map[int64]*domain.Users
	err      error
}

func (m *memUsers) Upsert(_ context.Context, u *domain.Users) error {
	if m.err != nil {
		return m.err
	}
	if existing, ok := m.byGithub[u.GithubID]; ok {
		u.ID = existing.ID
	} else {
		u.ID = int64(len(m.byGithub) + 1)
	}
	m.byGithub[u.GithubID] = u
	return nil
}

func (m *memUsers) Get(context.Context, int64) (*domain.Users, error) { return nil, nil }

func (m *memUsers) GetByGithubID(_ context.Context, id int64) (*domain.Users, error) {
	return m.byGithub[id], nil
}

func octocat() *domain.GithubUser {
	name := "The Octocat"
	return &domain.GithubUser{ID: 583231, Login: "octocat", Name: &name}
}

func TestLogin(t *testing.T) {
	users := &memUsers{byGithub: map[int64]*domain.Users{}}
	svc := NewGithubAuthService(users, fakeIdentity{token: "gho_abc"}, fakeGithub{user: octocat()}, logging.NewNopLogger())

	if svc.ProviderName() != domain.ProviderGithub {
		t.Fatalf("unexpected provider %q", svc.ProviderName())
	}
	if got := svc.LoginURL("xyz"); got != "https://github.test/authorize?state=xyz" {
		t.Fatalf("unexpected login url %q", got)
	}

	anon := domain.NewAnonymousSession()
	sess, err := svc.Login(context.Background(), "code", anon)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.ID != anon.ID {
		t.Fatalf("session id should survive login")
	}
	if !sess.LoggedIn() || *sess.UserID != 1 || sess.Login != "octocat" || sess.AccessToken != "gho_abc" {
		t.Fatalf("unexpected session %+v", sess)
	}

	again, err := svc.Login(context.Background(), "code", nil)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if *again.UserID != 1 || again.ID == "" {
		t.Fatalf("returning user must keep its id and get a fresh session id: %+v", again)
	}
}

func TestLoginErrors(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNopLogger()
	newUsers := func() *memUsers { return &memUsers{byGithub: map[int64]*domain.Users{}} }

	cases := []struct {
		name string
		svc  IAuthService
		code string
		want error
	}{
		{name: "missing code", svc: NewGithubAuthService(newUsers(), fakeIdentity{token: "t"}, fakeGithub{user: octocat()}, logger), want: errs.TokenExchange},
		{name: "exchange", svc: NewGithubAuthService(newUsers(), fakeIdentity{err: errs.TokenExchange}, fakeGithub{}, logger), code: "c", want: errs.TokenExchange},
		{name: "no token", svc: NewGithubAuthService(newUsers(), fakeIdentity{err: errs.NoAccessToken}, fakeGithub{}, logger), code: "c", want: errs.NoAccessToken},
		{name: "user info", svc: NewGithubAuthService(newUsers(), fakeIdentity{token: "t"}, fakeGithub{err: errs.FetchUserInfo}, logger), code: "c", want: errs.FetchUserInfo},
		{
			name: "upsert",
			svc:  NewGithubAuthService(&memUsers{byGithub: map[int64]*domain.Users{}, err: errors.New("db")}, fakeIdentity{token: "t"}, fakeGithub{user: octocat()}, logger),
			code: "c",
			want: errs.FailedToCreateUser,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.svc.Login(ctx, tc.code, nil); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
