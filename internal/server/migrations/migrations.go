// Package migrations embeds the goose SQL migrations, one directory per
// database dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// goose keeps its dialect and FS in package globals
var gooseMu sync.Mutex

func setup(driver string) (string, error) {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())

	switch driver {
	case DriverPostgres:
		return "postgres", goose.SetDialect("pgx")
	case DriverSQLite:
		return "sqlite", goose.SetDialect("sqlite3")
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := setup(driver)
	if err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}

// Reset rolls every migration back, dropping all tables, and applies them
// again. Stored data is lost.
func Reset(ctx context.Context, db *sql.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := setup(driver)
	if err != nil {
		return err
	}
	if err := goose.ResetContext(ctx, db, dir); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return goose.UpContext(ctx, db, dir)
}
