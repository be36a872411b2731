package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platekeeper/platekeeper/internal/catalog/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema migrations. Safe to call on
// every startup; goose tracks the applied version in the database itself.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the sqlite catalog database at dsn
// and brings the schema up to date. The caller owns closing the handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Single connection keeps sqlite from returning SQLITE_BUSY when loads
	// overlap the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
