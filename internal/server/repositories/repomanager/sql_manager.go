// Package repomanager opens the journal database and vends repositories
// bound to a DB, connection or transaction. SQLite (modernc) and PostgreSQL
// (pgx) share one set of queries.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/migrations"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SQLRepositoryManager struct {
	db     *sqlx.DB
	driver string
}

// seams for tests
var (
	migrateUp    = migrations.Up
	migrateReset = migrations.Reset
)

// Open connects to the database behind dsn using driver ("sqlite" or "pgx").
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case migrations.DriverSQLite, migrations.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == migrations.DriverSQLite {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func NewSQLRepositoryManager(db *sqlx.DB) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, driver: db.DriverName()}
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db)
}

// RunMigrations applies the embedded migrations. With reset, every table is
// dropped and recreated first.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, reset bool) error {
	var run func(context.Context, *sql.DB, string) error = migrateUp
	if reset {
		run = migrateReset
	}
	if err := run(ctx, m.db.DB, m.driver); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
