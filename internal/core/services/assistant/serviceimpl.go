package assistant

import (
	"context"
	"strings"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

var _ IAssistantService = (*AssistantService)(nil)

type AssistantService struct {
	problems secondary.ProblemRepository
	model    secondary.LanguageModel
	logger   primary.Logger
}

// NewAssistantService accepts a nil model; the service then reports itself unavailable.
func NewAssistantService(problems secondary.ProblemRepository, model secondary.LanguageModel, logger primary.Logger) *AssistantService {
	return &AssistantService{
		problems: problems,
		model:    model,
		logger:   logger,
	}
}

func (s *AssistantService) prepare(ctx context.Context, problemID string) (*domain.Problem, error) {
	if s.model == nil {
		return nil, errs.AssistantUnavailable
	}
	return s.problems.Get(ctx, problemID)
}

func (s *AssistantService) Chat(ctx context.Context, problemID string, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", errs.EmptyMessage
	}
	p, err := s.prepare(ctx, problemID)
	if err != nil {
		return "", err
	}

	answer, err := s.model.Generate(ctx, conversation(p, req))
	if err != nil {
		s.logger.Error("Assistant chat failed", "problemId", problemID, "error", err)
		return "", err
	}
	return answer, nil
}

func (s *AssistantService) ChatStream(ctx context.Context, problemID string, req ChatRequest, emit func(chunk string) error) error {
	if strings.TrimSpace(req.Message) == "" {
		return errs.EmptyMessage
	}
	p, err := s.prepare(ctx, problemID)
	if err != nil {
		return err
	}

	if err := s.model.GenerateStream(ctx, conversation(p, req), emit); err != nil {
		s.logger.Error("Assistant stream failed", "problemId", problemID, "error", err)
		return err
	}
	return nil
}

func (s *AssistantService) Complete(ctx context.Context, problemID, before, after string) (string, error) {
	p, err := s.prepare(ctx, problemID)
	if err != nil {
		return "", err
	}

	out, err := s.model.Generate(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: completionPrompt(p, before, after)},
	})
	if err != nil {
		s.logger.Error("Assistant completion failed", "problemId", problemID, "error", err)
		return "", err
	}
	return stripFences(out), nil
}
