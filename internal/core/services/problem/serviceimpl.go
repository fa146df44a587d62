package problem

import (
	"context"
	"fmt"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
)

var _ IProblemService = (*ProblemService)(nil)

type ProblemService struct {
	problems    secondary.ProblemRepository
	completions secondary.CompletionRepository
	logger      primary.Logger
}

func NewProblemService(problems secondary.ProblemRepository, completions secondary.CompletionRepository, logger primary.Logger) *ProblemService {
	return &ProblemService{
		problems:    problems,
		completions: completions,
		logger:      logger,
	}
}

func (s *ProblemService) List(ctx context.Context, userID *int64, filter domain.ProblemFilter) ([]*domain.Problem, error) {
	all, err := s.problems.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	done := map[string]bool{}
	if filter.HideCompleted && userID != nil {
		completed, err := s.completions.List(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list completed problems: %w", err)
		}
		for _, c := range completed {
			done[c.ProblemID] = true
		}
	}

	out := make([]*domain.Problem, 0, len(all))
	for _, p := range all {
		if filter.Match(p) && !done[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProblemService) Get(ctx context.Context, id string) (*domain.Problem, error) {
	return s.problems.Get(ctx, id)
}
