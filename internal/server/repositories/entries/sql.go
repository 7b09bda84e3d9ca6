// Package entries provides the SQL repository for journal entries. The same
// queries run on SQLite and PostgreSQL; placeholders are rebound per driver.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/jmoiron/sqlx"
)

// SQLRepository implements Repository over a dbx.DBTX (DB, Conn or Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type entryRow struct {
	ID        int64         `db:"id"`
	Title     string        `db:"title"`
	Date      string        `db:"date"`
	TimeSpent sql.NullInt64 `db:"time_spent"`
	Learned   string        `db:"learned"`
	Resources string        `db:"resources"`
	Tags      string        `db:"tags"`
	Slug      string        `db:"slug"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

const selectColumns = `id, title, date, time_spent, learned, resources, tags, slug, created_at, updated_at`

func (r entryRow) toModel() (*models.Entry, error) {
	d, err := time.Parse(common.DateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("entry %d: bad stored date %q: %w", r.ID, r.Date, err)
	}
	e := &models.Entry{
		ID:        r.ID,
		Title:     r.Title,
		Date:      d,
		Learned:   r.Learned,
		Resources: r.Resources,
		Tags:      r.Tags,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.TimeSpent.Valid {
		v := r.TimeSpent.Int64
		e.TimeSpent = &v
	}
	return e, nil
}

func timeSpentArg(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// Create inserts entry and fills in its ID and timestamps. entry.Slug must
// already be set; a duplicate slug surfaces as a unique violation
// (see dbx.IsUniqueViolation).
func (r *SQLRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	now := time.Now().UTC()

	query := r.db.Rebind(
		`INSERT INTO entries (title, date, time_spent, learned, resources, tags, slug, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id
		 `)

	err := r.db.QueryRowxContext(ctx, query,
		entry.Title, entry.Date.Format(common.DateLayout), timeSpentArg(entry.TimeSpent),
		entry.Learned, entry.Resources, entry.Tags, entry.Slug, now, now).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	entry.CreatedAt = now
	entry.UpdatedAt = now
	return entry, nil
}

func (r *SQLRepository) GetBySlug(ctx context.Context, slug string) (*models.Entry, error) {
	query := r.db.Rebind(`SELECT ` + selectColumns + ` FROM entries WHERE slug = ?`)

	var row entryRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return row.toModel()
}

func (r *SQLRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM entries WHERE slug = ?`)

	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, slug); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// List returns entries in insertion order. A non-empty tag narrows the
// result to entries whose tags field contains it as a substring; token
// matching is the caller's job.
func (r *SQLRepository) List(ctx context.Context, tag string) ([]*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM entries`
	var args []any
	if tag != "" {
		query += ` WHERE LOWER(tags) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(tag))+"%")
	}
	query += ` ORDER BY id`

	var rows []entryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}

	result := make([]*models.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

// Update overwrites the editable fields of the entry with entry.ID. The slug
// never changes.
func (r *SQLRepository) Update(ctx context.Context, entry *models.Entry) error {
	now := time.Now().UTC()

	query := r.db.Rebind(
		`UPDATE entries
		 SET title = ?, date = ?, time_spent = ?, learned = ?, resources = ?, tags = ?, updated_at = ?
		 WHERE id = ?
		 `)

	res, err := r.db.ExecContext(ctx, query,
		entry.Title, entry.Date.Format(common.DateLayout), timeSpentArg(entry.TimeSpent),
		entry.Learned, entry.Resources, entry.Tags, now, entry.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if err := expectOneRow(res); err != nil {
		return err
	}
	entry.UpdatedAt = now
	return nil
}

func (r *SQLRepository) DeleteBySlug(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM entries WHERE slug = ?`), slug)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
