package users

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/google/uuid"
)

// SQLRepository stores users with salt and verifier hex-encoded, which keeps
// the schema identical on SQLite and PostgreSQL.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	query := r.db.Rebind(
		`INSERT INTO users (id, username, salt, verifier, created_at)
         VALUES (?, ?, ?, ?, ?)
		 `)

	_, err := r.db.ExecContext(ctx, query,
		id, user.UserName, hex.EncodeToString(user.Salt), hex.EncodeToString(user.Verifier), now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return user, nil
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query := r.db.Rebind(
		`SELECT id, username, salt, verifier, created_at FROM users
		 WHERE username = ?
		 `)

	var salt, verifier string
	user := &models.User{}
	err := r.db.QueryRowxContext(ctx, query, userName).
		Scan(&user.ID, &user.UserName, &salt, &verifier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Salt, err = hex.DecodeString(salt); err != nil {
		return nil, fmt.Errorf("user %s: bad salt: %w", user.ID, err)
	}
	if user.Verifier, err = hex.DecodeString(verifier); err != nil {
		return nil, fmt.Errorf("user %s: bad verifier: %w", user.ID, err)
	}
	return user, nil
}

// UpdateVerifier replaces the stored salt and verifier of user id.
func (r *SQLRepository) UpdateVerifier(ctx context.Context, id string, salt, verifier []byte) error {
	query := r.db.Rebind(`UPDATE users SET salt = ?, verifier = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, hex.EncodeToString(salt), hex.EncodeToString(verifier), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
