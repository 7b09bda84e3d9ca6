// Package dbtest opens throwaway SQLite databases with the schema applied.
package dbtest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/learningjournal/internal/server/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var seq atomic.Int64

// Open returns a fresh in-memory database, migrated and closed with the test.
// Each call gets its own named database so tests never see each other's
// data. Callers holding a connection must run every statement on it.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:journal_test_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := sqlx.Open(migrations.DriverSQLite, dsn)
	require.NoError(t, err)
	// a single connection serializes access the way SQLite wants it
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db.DB, migrations.DriverSQLite))
	return db
}
