package completionrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	querybuilder "gitlab.com/llmeet.net/internal/utils"
)

var _ secondary.CompletionRepository = (*CompletionRepository)(nil)

// CompletionRepository stores which problems each user has finished.
type CompletionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) *CompletionRepository {
	return &CompletionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *CompletionRepository) Mark(ctx context.Context, userID int64, problemID string) error {
	tbl := domain.GetCompletedProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.UserID, tbl.ProblemID).
		Into(tbl.GetTableName()).
		Values(userID, problemID).
		OnConflict(tbl.UserID, tbl.ProblemID).
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to mark problem completed", "userId", userID, "problemId", problemID, "error", err)
		return fmt.Errorf("failed to mark problem completed: %w", err)
	}
	return nil
}

func (r *CompletionRepository) Unmark(ctx context.Context, userID int64, problemID string) error {
	tbl := domain.GetCompletedProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		And(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to unmark problem", "userId", userID, "problemId", problemID, "error", err)
		return fmt.Errorf("failed to unmark problem: %w", err)
	}
	return nil
}

// List returns the user's completions, most recent first.
func (r *CompletionRepository) List(ctx context.Context, userID int64) ([]*domain.CompletedProblem, error) {
	tbl := domain.GetCompletedProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.UserID, tbl.ProblemID, tbl.CompletedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		OrderBy(tbl.CompletedAt, false).
		OrderBy(tbl.ID, false).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	completed := make([]*domain.CompletedProblem, 0)
	if err := r.db.SelectContext(ctx, &completed, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list completed problems: %w", err)
	}
	return completed, nil
}
