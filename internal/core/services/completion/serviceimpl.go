package completion

import (
	"context"
	"errors"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/core/services/codespace"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

var _ ICompletionService = (*CompletionService)(nil)

type CompletionService struct {
	completions secondary.CompletionRepository
	problems    secondary.ProblemRepository
	codespaces  codespace.ICodespaceService
	logger      primary.Logger
}

func NewCompletionService(
	completions secondary.CompletionRepository,
	problems secondary.ProblemRepository,
	codespaces codespace.ICodespaceService,
	logger primary.Logger,
) *CompletionService {
	return &CompletionService{
		completions: completions,
		problems:    problems,
		codespaces:  codespaces,
		logger:      logger,
	}
}

func (s *CompletionService) Mark(ctx context.Context, session *domain.Session, problemID string) error {
	if !session.LoggedIn() {
		return errs.NotAuthenticated
	}
	return s.completions.Mark(ctx, *session.UserID, problemID)
}

func (s *CompletionService) Unmark(ctx context.Context, session *domain.Session, problemID string) error {
	if !session.LoggedIn() {
		return errs.NotAuthenticated
	}
	return s.completions.Unmark(ctx, *session.UserID, problemID)
}

func (s *CompletionService) List(ctx context.Context, userID int64) ([]*domain.CompletedProblem, error) {
	completed, err := s.completions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range completed {
		p, err := s.problems.Get(ctx, c.ProblemID)
		switch {
		case err == nil:
			c.ProblemTitle = p.Title
		case errors.Is(err, errs.ProblemNotFound):
			c.ProblemTitle = c.ProblemID
		default:
			return nil, err
		}
	}
	return completed, nil
}

// Dashboard degrades to an empty codespace list when GitHub cannot be reached.
func (s *CompletionService) Dashboard(ctx context.Context, session *domain.Session) (*Dashboard, error) {
	if !session.LoggedIn() {
		return nil, errs.NotAuthenticated
	}
	completed, err := s.List(ctx, *session.UserID)
	if err != nil {
		return nil, err
	}

	codespaces := []*domain.Codespace{}
	if session.AccessToken != "" {
		list, err := s.codespaces.List(ctx, session.AccessToken)
		if err != nil {
			s.logger.Warn("Failed to list codespaces for dashboard", "userId", *session.UserID, "error", err)
		} else {
			codespaces = list
		}
	}

	return &Dashboard{
		User:       session.User(),
		Completed:  completed,
		Codespaces: codespaces,
	}, nil
}
