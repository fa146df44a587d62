package judge

import (
	"context"

	"gitlab.com/llmeet.net/internal/domain"
)

// IJudgeService runs candidate code against test cases, one fresh process per test case.
type IJudgeService interface {
	// RunTestCase judges a single test case. Candidate failures come back as a
	// verdict; a non-nil error is always an infrastructure problem.
	RunTestCase(ctx context.Context, sourceCode, setupCode string, testCase domain.TestCase) (domain.Verdict, error)

	// RunSubmission judges every test case of the submission and keeps verdicts in input order.
	RunSubmission(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error)
}
