// Package pgtest opens a throwaway schema on the database named by
// LLMEET_TEST_DATABASE_URL. Tests that need it are skipped when the variable is unset.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/llmeet.net/internal/adapter/postgres/migration"
	"gitlab.com/llmeet.net/internal/domain"
)

const envURL = "LLMEET_TEST_DATABASE_URL"

// Open returns a connection and a freshly migrated schema that is dropped on cleanup.
func Open(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s not set", envURL)
	}

	db, err := sqlx.Open("postgres", url)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping database: %v", err)
	}

	schema := fmt.Sprintf("test_%s", domain.ShortID())
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = db.Close()
	})

	if err := migration.Migrate(ctx, db, schema); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, schema
}
