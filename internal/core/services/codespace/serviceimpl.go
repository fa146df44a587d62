package codespace

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

var _ ICodespaceService = (*CodespaceService)(nil)

type CodespaceService struct {
	github   secondary.GithubAPI
	problems secondary.ProblemRepository
	cfg      config.GithubConfig
	logger   primary.Logger
}

func NewCodespaceService(github secondary.GithubAPI, problems secondary.ProblemRepository, cfg *config.GithubConfig, logger primary.Logger) *CodespaceService {
	c := *cfg
	if c.Location == "" {
		c.Location = "WestUs2"
	}
	if c.IdleTimeoutMinutes <= 0 {
		c.IdleTimeoutMinutes = 30
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.PollAttempts <= 0 {
		c.PollAttempts = 60
	}
	return &CodespaceService{
		github:   github,
		problems: problems,
		cfg:      c,
		logger:   logger,
	}
}

func (s *CodespaceService) Create(ctx context.Context, accessToken, problemID string) (string, error) {
	if accessToken == "" {
		return "", errs.NotAuthenticated
	}
	problem, err := s.problems.Get(ctx, problemID)
	if err != nil {
		return "", err
	}

	repoName := problem.TemplateRepo
	if repoName == "" {
		repoName = s.cfg.TemplateRepo
	}
	repo, err := s.github.GetRepository(ctx, accessToken, repoName)
	if err != nil {
		return "", err
	}
	if repo.DefaultBranch == "" {
		return "", errs.RepositoryNoBranch
	}

	machine := domain.DefaultMachineType
	machines, err := s.github.ListMachines(ctx, accessToken, repoName)
	if err != nil {
		s.logger.Warn("Failed to list machine types, using default", "repo", repoName, "error", err)
	} else if len(machines) > 0 {
		machine = machines[0].Name
	}

	created, err := s.github.CreateCodespace(ctx, accessToken, domain.CodespaceSpec{
		RepositoryID:       repo.ID,
		Ref:                repo.DefaultBranch,
		Location:           s.cfg.Location,
		Machine:            machine,
		DevcontainerPath:   devcontainerPath,
		DisplayName:        displayName(problemID),
		IdleTimeoutMinutes: s.cfg.IdleTimeoutMinutes,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Codespace created, waiting for it to become available", "name", created.Name, "problemId", problemID)

	return s.waitAvailable(ctx, accessToken, created.Name)
}

func (s *CodespaceService) waitAvailable(ctx context.Context, accessToken, name string) (string, error) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.cfg.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		cs, err := s.github.GetCodespace(ctx, accessToken, name)
		if err != nil {
			s.logger.Debug("Codespace status check failed", "name", name, "attempt", attempt, "error", err)
			continue
		}
		s.logger.Debug("Codespace status", "name", name, "attempt", attempt, "state", cs.State)
		if cs.State == domain.CodespaceStateAvailable {
			return cs.WebURL, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", errs.CodespaceTimeout, s.cfg.PollAttempts)
}

func (s *CodespaceService) List(ctx context.Context, accessToken string) ([]*domain.Codespace, error) {
	if accessToken == "" {
		return nil, errs.NotAuthenticated
	}
	all, err := s.github.ListCodespaces(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	titles := s.titles(ctx)
	out := make([]*domain.Codespace, 0, len(all))
	for _, cs := range all {
		pid, ok := problemIDFrom(cs.DisplayName)
		if !ok {
			continue
		}
		cs.ProblemID = pid
		cs.ProblemTitle = titles[pid]
		out = append(out, cs)
	}
	return out, nil
}

func (s *CodespaceService) titles(ctx context.Context) map[string]string {
	problems, err := s.problems.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load problem titles", "error", err)
		return map[string]string{}
	}
	titles := make(map[string]string, len(problems))
	for _, p := range problems {
		titles[p.ID] = p.Title
	}
	return titles
}

func (s *CodespaceService) Active(ctx context.Context, accessToken, problemID string) (*domain.Codespace, error) {
	list, err := s.List(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	for _, cs := range list {
		if cs.ProblemID == problemID {
			return cs, nil
		}
	}
	return nil, nil
}

func (s *CodespaceService) Delete(ctx context.Context, accessToken, name string) error {
	if accessToken == "" {
		return errs.NotAuthenticated
	}
	if err := s.github.DeleteCodespace(ctx, accessToken, name); err != nil {
		return err
	}
	s.logger.Info("Codespace deleted", "name", name)
	return nil
}
