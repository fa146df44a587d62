// Package problemfile serves the problem catalogue from a JSON file.
package problemfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const defaultLanguage = "python"

var _ secondary.ProblemRepository = (*Repository)(nil)

// Repository keeps the parsed file in memory. It is never mutated after New,
// so concurrent readers need no locking.
type Repository struct {
	problems []*domain.Problem
	byID     map[string]*domain.Problem
}

type fileProblem struct {
	domain.Problem
	IsActive *bool `json:"is_active"`
}

func New(path string) (*Repository, error) {
	problems, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewFromProblems(problems)
}

// NewFromProblems builds a repository from problems already in memory.
func NewFromProblems(problems []*domain.Problem) (*Repository, error) {
	r := &Repository{
		problems: make([]*domain.Problem, 0, len(problems)),
		byID:     make(map[string]*domain.Problem, len(problems)),
	}
	for _, p := range problems {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: problem without id", errs.InvalidProblemFile)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate problem id %q", errs.InvalidProblemFile, p.ID)
		}
		r.byID[p.ID] = p
		if p.IsActive {
			r.problems = append(r.problems, p)
		}
	}
	return r, nil
}

// Load parses a problems file. Missing is_active means active, missing language means python.
func Load(path string) ([]*domain.Problem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.InvalidProblemFile, err)
	}

	var entries []fileProblem
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.InvalidProblemFile, path, err)
	}

	problems := make([]*domain.Problem, 0, len(entries))
	for i := range entries {
		p := entries[i].Problem
		p.IsActive = entries[i].IsActive == nil || *entries[i].IsActive
		if p.Language == "" {
			p.Language = defaultLanguage
		}
		if p.Topics == nil {
			p.Topics = []string{}
		}
		if p.Tests == nil {
			p.Tests = []domain.TestCase{}
		}
		problems = append(problems, &p)
	}
	return problems, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Problem, error) {
	out := make([]*domain.Problem, len(r.problems))
	copy(out, r.problems)
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Problem, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, errs.ProblemNotFound
	}
	return p, nil
}
