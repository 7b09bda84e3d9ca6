// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by *sqlx.DB, *sqlx.Conn and
// *sqlx.Tx, and a helper to run functions inside a transaction.
package dbx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is the subset of sqlx used by our repos. Queries are written with
// '?' placeholders and passed through Rebind before execution so the same
// SQL runs on SQLite and PostgreSQL.
type DBTX interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	Rebind(query string) string
}

// Beginner starts transactions. *sqlx.DB and *sqlx.Conn satisfy it.
type Beginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Conn is a handle that can both run queries and start transactions, such
// as a pooled *sqlx.DB or a single checked-out *sqlx.Conn.
type Conn interface {
	DBTX
	Beginner
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE ..."))
//	    return err
//	})
func WithTx(ctx context.Context, db Beginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
