package users

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/jmoiron/sqlx"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	xdb := sqlx.NewDb(db, "pgx")
	return NewSQLRepository(xdb), mock, xdb
}

func TestCreate_HexEncodes(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*salt,\s*verifier,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", "73616c74", "0102", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.User{UserName: "alice", Salt: []byte("salt"), Verifier: []byte{1, 2}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByLogin_BadHex(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "salt", "verifier", "created_at"}).
		AddRow("u-1", "alice", "zz", "00", time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,\s*salt,\s*verifier,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`).
		WithArgs("alice").
		WillReturnRows(rows)

	if _, err := repo.GetUserByLogin(context.Background(), "alice"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdateVerifier_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+salt\s*=\s*\$1,\s*verifier\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3$`).
		WithArgs("01", "02", "u-1").
		WillReturnError(errors.New("db err"))

	err := repo.UpdateVerifier(context.Background(), "u-1", []byte{1}, []byte{2})
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
