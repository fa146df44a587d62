package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	querybuilder "gitlab.com/llmeet.net/internal/utils"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) columns() []string {
	userTbl := domain.GetUserTable()
	return []string{
		userTbl.ID, userTbl.GithubID, userTbl.Login,
		userTbl.Name, userTbl.AvatarURL, userTbl.CreatedAt,
	}
}

func (u userRepo) Upsert(ctx context.Context, user *domain.Users) error {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(userTbl.GithubID, userTbl.Login, userTbl.Name, userTbl.AvatarURL).
		Into(userTbl.GetTableName()).
		Values(user.GithubID, user.Login, user.Name, user.AvatarURL).
		OnConflict(userTbl.GithubID).
		SetExclude(userTbl.Login, userTbl.Name, userTbl.AvatarURL).
		Returning(userTbl.ID, userTbl.CreatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if err := u.db.QueryRowxContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		u.logger.Error("Failed to upsert user", "githubId", user.GithubID, "error", err)
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (u userRepo) Get(ctx context.Context, id int64) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().ID, id)
}

func (u userRepo) GetByGithubID(ctx context.Context, githubID int64) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().GithubID, githubID)
}

// getBy returns nil, nil when no row matches.
func (u userRepo) getBy(ctx context.Context, col string, value interface{}) (*domain.Users, error) {
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(u.columns()...).
		From(domain.GetUserTable().GetTableName()).
		Where(fmt.Sprintf("%s = ?", col), value).
		Limit(1).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
