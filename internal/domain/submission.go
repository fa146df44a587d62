package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is candidate code paired with the tests it is judged against
type Submission struct {
	SourceCode string
	SetupCode  string
	TestCases  []TestCase
}

// NewSubmission creates a new submission
func NewSubmission(sourceCode, setupCode string, testCases []TestCase) *Submission {
	return &Submission{
		SourceCode: sourceCode,
		SetupCode:  setupCode,
		TestCases:  testCases,
	}
}

// SubmissionRecord is one entry of a session's submission history
type SubmissionRecord struct {
	ID          string    `json:"id"`
	ProblemID   string    `json:"problem_id"`
	Passed      bool      `json:"passed"`
	Results     []Verdict `json:"results"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewSubmissionRecord creates a history entry with a short random id
func NewSubmissionRecord(problemID string, result *SubmissionResult) *SubmissionRecord {
	return &SubmissionRecord{
		ID:          ShortID(),
		ProblemID:   problemID,
		Passed:      result.AllPassed,
		Results:     result.Verdicts,
		SubmittedAt: time.Now().UTC(),
	}
}

// Redacted returns a copy of r whose hidden failures carry no detail
func (r *SubmissionRecord) Redacted() *SubmissionRecord {
	out := *r
	out.Results = make([]Verdict, len(r.Results))
	for i, v := range r.Results {
		out.Results[i] = v.Redacted()
	}
	return &out
}

// ShortID returns the first 8 hex characters of a random UUID.
func ShortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// SubmissionEvent is published after a submission has been judged
type SubmissionEvent struct {
	SessionID string            `json:"session_id"`
	UserID    *int64            `json:"user_id,omitempty"`
	Record    *SubmissionRecord `json:"record"`
}
