package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
	querybuilder "gitlab.com/llmeet.net/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

type problemRow struct {
	domain.Problem
	Topics pq.StringArray `db:"topics"`
}

type testRow struct {
	ProblemID string `db:"problem_id"`
	Position  int    `db:"position"`
	domain.TestCase
}

func problemColumns() []string {
	tbl := domain.GetProblemTable()
	return []string{
		tbl.ID, tbl.Title, tbl.Difficulty, tbl.Description, tbl.Topics,
		tbl.Language, tbl.Type, tbl.Priority, tbl.Reporter,
		tbl.StarterCode, tbl.SetupCode, tbl.TemplateRepo, tbl.IsActive,
	}
}

func (r *ProblemRepository) List(ctx context.Context) ([]*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(problemColumns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.IsActive), true).
		OrderBy(tbl.ID, true).
		Build()

	var rows []problemRow
	if err := r.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	tests, err := r.tests(ctx, "")
	if err != nil {
		return nil, err
	}

	problems := make([]*domain.Problem, 0, len(rows))
	for i := range rows {
		p := toProblem(&rows[i])
		p.Tests = append(p.Tests, tests[p.ID]...)
		problems = append(problems, p)
	}
	return problems, nil
}

func (r *ProblemRepository) Get(ctx context.Context, id string) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(problemColumns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Limit(1).
		Build()

	var row problemRow
	if err := r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ProblemNotFound
		}
		return nil, fmt.Errorf("failed to get problem %s: %w", id, err)
	}

	tests, err := r.tests(ctx, id)
	if err != nil {
		return nil, err
	}
	p := toProblem(&row)
	p.Tests = append(p.Tests, tests[id]...)
	return p, nil
}

// tests loads test cases grouped by problem id, for one problem or for all when problemID is empty.
func (r *ProblemRepository) tests(ctx context.Context, problemID string) (map[string][]domain.TestCase, error) {
	tbl := domain.GetProblemTestTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ProblemID, tbl.Position, tbl.InputExpression, tbl.ExpectedExpression, tbl.IsHidden).
		From(tbl.GetTableName())
	if problemID != "" {
		qb = qb.Where(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID)
	}
	query, args := qb.OrderBy(tbl.ProblemID, true).OrderBy(tbl.Position, true).Build()

	var rows []testRow
	if err := r.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to load problem tests: %w", err)
	}

	byProblem := make(map[string][]domain.TestCase)
	for _, row := range rows {
		byProblem[row.ProblemID] = append(byProblem[row.ProblemID], row.TestCase)
	}
	return byProblem, nil
}

// Import upserts problems and replaces their tests, all in one transaction.
func (r *ProblemRepository) Import(ctx context.Context, problems []*domain.Problem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	tbl := domain.GetProblemTable()
	testTbl := domain.GetProblemTestTable()
	for _, p := range problems {
		query, args := querybuilder.NewQueryBuilder(r.schema).
			Insert(problemColumns()...).
			Into(tbl.GetTableName()).
			Values(p.ID, p.Title, p.Difficulty, p.Description, pq.StringArray(p.Topics),
				p.Language, p.Type, p.Priority, p.Reporter,
				p.StarterCode, p.SetupCode, p.TemplateRepo, p.IsActive).
			OnConflict(tbl.ID).
			SetExclude(problemColumns()[1:]...).
			Build()
		if _, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
			return fmt.Errorf("failed to import problem %s: %w", p.ID, err)
		}

		query, args = querybuilder.NewQueryBuilder(r.schema).
			Delete(testTbl.GetTableName()).
			Where(fmt.Sprintf("%s = ?", testTbl.ProblemID), p.ID).
			Build()
		if _, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
			return fmt.Errorf("failed to clear tests of %s: %w", p.ID, err)
		}
		if len(p.Tests) == 0 {
			continue
		}

		qb := querybuilder.NewQueryBuilder(r.schema).
			Insert(testTbl.ProblemID, testTbl.Position, testTbl.InputExpression, testTbl.ExpectedExpression, testTbl.IsHidden).
			Into(testTbl.GetTableName())
		for i, tc := range p.Tests {
			qb = qb.Values(p.ID, i, tc.InputExpression, tc.ExpectedExpression, tc.IsHidden)
		}
		query, args = qb.Build()
		if _, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
			return fmt.Errorf("failed to import tests of %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	r.logger.Info("Imported problems", "count", len(problems))
	return nil
}

func toProblem(row *problemRow) *domain.Problem {
	p := row.Problem
	p.Topics = []string(row.Topics)
	if p.Topics == nil {
		p.Topics = []string{}
	}
	p.Tests = []domain.TestCase{}
	return &p
}
