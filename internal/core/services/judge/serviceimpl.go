package judge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
)

const (
	MessagePassed  = "Test passed"
	MessageTimeout = "Timeout: Code took too long to execute"
	MessageUnknown = "Unknown error"

	scriptFileName = "main.py"
	defaultTimeout = 5 * time.Second
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService judges submissions. It holds no state besides its configuration.
type JudgeService struct {
	runner secondary.ScriptRunner
	cfg    config.JudgeConfig
	logger primary.Logger
}

func NewJudgeService(runner secondary.ScriptRunner, cfg *config.JudgeConfig, logger primary.Logger) *JudgeService {
	c := *cfg
	if c.Interpreter == "" {
		c.Interpreter = "python3"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxParallel < 1 {
		c.MaxParallel = 1
	}
	return &JudgeService{
		runner: runner,
		cfg:    c,
		logger: logger,
	}
}

func (s *JudgeService) RunTestCase(ctx context.Context, sourceCode, setupCode string, testCase domain.TestCase) (domain.Verdict, error) {
	token := newToken()
	script := composeScript(setupCode, sourceCode, testCase.InputExpression, testCase.ExpectedExpression, token)

	res, err := s.runner.Run(ctx, domain.ExecRequest{
		Interpreter: s.cfg.Interpreter,
		FileName:    scriptFileName,
		Source:      script,
		Timeout:     s.cfg.Timeout,
		OutputLimit: s.cfg.OutputLimit,
	})
	if err != nil {
		s.logger.Error("Failed to run test case", "error", err)
		return domain.Verdict{}, newError(err)
	}

	verdict := classify(res, token)
	verdict.IsHidden = testCase.IsHidden

	s.logger.Debug("Test case judged",
		"outcome", verdict.Outcome,
		"exitCode", res.ExitCode,
		"duration", res.Duration)
	return verdict, nil
}

func classify(res *domain.ExecResult, token string) domain.Verdict {
	if res.TimedOut {
		return domain.Verdict{Outcome: domain.OutcomeTimeout, Message: MessageTimeout}
	}

	if line, ok := findMarker(res.Stdout, token); ok {
		if line == markerPass {
			return domain.Verdict{Outcome: domain.OutcomePassed, Message: MessagePassed}
		}
		// FAIL and ERROR markers are both failures of the candidate's answer
		return domain.Verdict{Outcome: domain.OutcomeFailed, Message: line}
	}

	message := strings.TrimSpace(res.Stderr)
	if message == "" {
		message = strings.TrimSpace(res.Stdout)
	}
	if message == "" {
		message = MessageUnknown
	}
	return domain.Verdict{Outcome: domain.OutcomeRuntimeError, Message: message}
}

func (s *JudgeService) RunSubmission(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error) {
	verdicts := make([]domain.Verdict, len(submission.TestCases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)
	for i, tc := range submission.TestCases {
		i, tc := i, tc
		g.Go(func() error {
			v, err := s.RunTestCase(gctx, submission.SourceCode, submission.SetupCode, tc)
			if err != nil {
				return fmt.Errorf("test case %d: %w", i, err)
			}
			verdicts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := domain.NewSubmissionResult(verdicts)
	s.logger.Info("Submission judged",
		"tests", len(verdicts),
		"allPassed", result.AllPassed)
	return result, nil
}
