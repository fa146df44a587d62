package submission

import (
	"context"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/core/services/judge"
	"gitlab.com/llmeet.net/internal/domain"
)

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	judge        judge.IJudgeService
	problems     secondary.ProblemRepository
	history      secondary.SubmissionHistory
	completions  secondary.CompletionRepository
	publisher    secondary.ResultPublisher
	revealHidden bool
	logger       primary.Logger
}

func NewSubmissionService(
	judgeSvc judge.IJudgeService,
	problems secondary.ProblemRepository,
	history secondary.SubmissionHistory,
	completions secondary.CompletionRepository,
	publisher secondary.ResultPublisher,
	revealHidden bool,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		judge:        judgeSvc,
		problems:     problems,
		history:      history,
		completions:  completions,
		publisher:    publisher,
		revealHidden: revealHidden,
		logger:       logger,
	}
}

// Submit fails only when the problem is unknown or the judge itself breaks.
// History, completion and publishing failures are logged and swallowed.
// Unless revealHidden is set, the record handed out, stored and published has
// its hidden failures redacted.
func (s *SubmissionService) Submit(ctx context.Context, session *domain.Session, problemID, code string) (*domain.SubmissionRecord, error) {
	problem, err := s.problems.Get(ctx, problemID)
	if err != nil {
		return nil, err
	}

	result, err := s.judge.RunSubmission(ctx, domain.NewSubmission(code, problem.SetupCode, problem.Tests))
	if err != nil {
		s.logger.Error("Judge failed", "problemId", problemID, "error", err)
		return nil, err
	}

	record := domain.NewSubmissionRecord(problemID, result)
	if !s.revealHidden {
		record = record.Redacted()
	}
	s.logger.Info("Submission judged",
		"problemId", problemID,
		"submissionId", record.ID,
		"passed", record.Passed,
		"tests", len(record.Results))

	if err := s.history.Append(ctx, session.ID, problemID, record); err != nil {
		s.logger.Error("Failed to record submission", "submissionId", record.ID, "error", err)
	}

	if record.Passed && session.LoggedIn() {
		if err := s.completions.Mark(ctx, *session.UserID, problemID); err != nil {
			s.logger.Error("Failed to mark problem completed", "problemId", problemID, "userId", *session.UserID, "error", err)
		}
	}

	event := &domain.SubmissionEvent{SessionID: session.ID, UserID: session.UserID, Record: record}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish submission result", "submissionId", record.ID, "error", err)
	}

	return record, nil
}

func (s *SubmissionService) History(ctx context.Context, session *domain.Session, problemID string) ([]*domain.SubmissionRecord, error) {
	records, err := s.history.List(ctx, session.ID, problemID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.SubmissionRecord{}
	}
	if !s.revealHidden {
		for i, rec := range records {
			records[i] = rec.Redacted()
		}
	}
	return records, nil
}
