package migration

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// Statements returns the schema DDL with every table qualified by schema.
func Statements(schema string) string {
	prefix := ""
	if schema != "" {
		prefix = schema + "."
	}
	return strings.ReplaceAll(schemaSQL, "{{schema}}", prefix)
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB, schema string) error {
	if _, err := db.ExecContext(ctx, Statements(schema)); err != nil {
		return fmt.Errorf("failed to migrate schema %q: %w", schema, err)
	}
	return nil
}
