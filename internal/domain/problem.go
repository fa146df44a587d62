package domain

import "strings"

// Problem is a coding problem together with its tests
type Problem struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Difficulty   string     `json:"difficulty" db:"difficulty"`
	Description  string     `json:"description" db:"description"`
	Topics       []string   `json:"topics" db:"-"`
	Language     string     `json:"language" db:"language"`
	Type         string     `json:"type" db:"type"`
	Priority     string     `json:"priority" db:"priority"`
	Reporter     string     `json:"reporter" db:"reporter"`
	StarterCode  string     `json:"starter_code" db:"starter_code"`
	SetupCode    string     `json:"setup_code" db:"setup_code"`
	TemplateRepo string     `json:"template_repo" db:"template_repo"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	Tests        []TestCase `json:"tests" db:"-"`
}

// HasTopic reports whether the problem is tagged with topic
func (p *Problem) HasTopic(topic string) bool {
	for _, t := range p.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// VisibleTests returns the tests that are not hidden
func (p *Problem) VisibleTests() []TestCase {
	visible := make([]TestCase, 0, len(p.Tests))
	for _, t := range p.Tests {
		if !t.IsHidden {
			visible = append(visible, t)
		}
	}
	return visible
}

// ProblemFilter narrows a problem listing. Empty fields match everything.
type ProblemFilter struct {
	Difficulty    string
	Topic         string
	Language      string
	HideCompleted bool
}

// Match reports whether p satisfies the difficulty, topic and language filters.
func (f ProblemFilter) Match(p *Problem) bool {
	if f.Difficulty != "" && !strings.EqualFold(p.Difficulty, f.Difficulty) {
		return false
	}
	if f.Topic != "" && !p.HasTopic(f.Topic) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(p.Language, f.Language) {
		return false
	}
	return true
}

type ProblemTable struct {
	ID           string
	Title        string
	Difficulty   string
	Description  string
	Topics       string
	Language     string
	Type         string
	Priority     string
	Reporter     string
	StarterCode  string
	SetupCode    string
	TemplateRepo string
	IsActive     string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:           "id",
		Title:        "title",
		Difficulty:   "difficulty",
		Description:  "description",
		Topics:       "topics",
		Language:     "language",
		Type:         "type",
		Priority:     "priority",
		Reporter:     "reporter",
		StarterCode:  "starter_code",
		SetupCode:    "setup_code",
		TemplateRepo: "template_repo",
		IsActive:     "is_active",
	}
}

func (ProblemTable) GetTableName() string {
	return "problems"
}

type ProblemTestTable struct {
	ProblemID          string
	Position           string
	InputExpression    string
	ExpectedExpression string
	IsHidden           string
}

func GetProblemTestTable() ProblemTestTable {
	return ProblemTestTable{
		ProblemID:          "problem_id",
		Position:           "position",
		InputExpression:    "input_expression",
		ExpectedExpression: "expected_expression",
		IsHidden:           "is_hidden",
	}
}

func (ProblemTestTable) GetTableName() string {
	return "problem_tests"
}
