package domain

// Outcome classifies the result of a single test case
type Outcome string

const (
	OutcomePassed       Outcome = "PASSED"
	OutcomeFailed       Outcome = "FAILED"
	OutcomeRuntimeError Outcome = "RUNTIME_ERROR"
	OutcomeTimeout      Outcome = "TIMEOUT"
)

// Verdict is the outcome of evaluating one test case
type Verdict struct {
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message"`
	IsHidden bool    `json:"hidden"`
}

// Passed reports whether the verdict outcome is OutcomePassed
func (v Verdict) Passed() bool {
	return v.Outcome == OutcomePassed
}

// HiddenFailureMessage stands in for the message of a hidden test that did not pass
const HiddenFailureMessage = "Hidden test failed"

// Redacted hides the message of a hidden test that did not pass. FAIL lines
// and tracebacks can carry the expected value.
func (v Verdict) Redacted() Verdict {
	if v.IsHidden && !v.Passed() {
		v.Message = HiddenFailureMessage
	}
	return v
}

// SubmissionResult holds one verdict per test case, in input order
type SubmissionResult struct {
	AllPassed bool      `json:"all_passed"`
	Verdicts  []Verdict `json:"verdicts"`
}

// NewSubmissionResult builds a result whose AllPassed flag is derived from verdicts.
func NewSubmissionResult(verdicts []Verdict) *SubmissionResult {
	if verdicts == nil {
		verdicts = []Verdict{}
	}
	allPassed := true
	for _, v := range verdicts {
		if !v.Passed() {
			allPassed = false
			break
		}
	}
	return &SubmissionResult{
		AllPassed: allPassed,
		Verdicts:  verdicts,
	}
}
