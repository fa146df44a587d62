package domain

// TestCase is one assertion run against a submission. Both expressions are
// evaluated as code after the candidate's source has been loaded.
type TestCase struct {
	InputExpression    string `json:"input" db:"input_expression"`
	ExpectedExpression string `json:"expected" db:"expected_expression"`
	IsHidden           bool   `json:"hidden" db:"is_hidden"`
}
