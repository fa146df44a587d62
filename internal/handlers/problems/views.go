package problems

import "gitlab.com/llmeet.net/internal/domain"

type ProblemSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
	Language   string   `json:"language"`
	Type       string   `json:"type"`
	Priority   string   `json:"priority"`
}

type ListResponse struct {
	Problems []ProblemSummary    `json:"problems"`
	User     *domain.SessionUser `json:"user"`
	LoggedIn bool                `json:"logged_in"`
}

// ProblemDetail never carries hidden test expressions
type ProblemDetail struct {
	ProblemSummary
	Description  string            `json:"description"`
	Reporter     string            `json:"reporter"`
	StarterCode  string            `json:"starter_code"`
	Tests        []domain.TestCase `json:"tests"`
	HiddenTests  int               `json:"hidden_tests"`
	TemplateRepo string            `json:"template_repo,omitempty"`
}

func summarize(p *domain.Problem) ProblemSummary {
	topics := p.Topics
	if topics == nil {
		topics = []string{}
	}
	return ProblemSummary{
		ID:         p.ID,
		Title:      p.Title,
		Difficulty: p.Difficulty,
		Topics:     topics,
		Language:   p.Language,
		Type:       p.Type,
		Priority:   p.Priority,
	}
}

func detail(p *domain.Problem) ProblemDetail {
	visible := p.VisibleTests()
	return ProblemDetail{
		ProblemSummary: summarize(p),
		Description:    p.Description,
		Reporter:       p.Reporter,
		StarterCode:    p.StarterCode,
		Tests:          visible,
		HiddenTests:    len(p.Tests) - len(visible),
		TemplateRepo:   p.TemplateRepo,
	}
}
