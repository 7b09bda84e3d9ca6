package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/cryptox"
	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/repomanager"
)

// Compared against when the username is unknown so that both failure paths
// cost one key derivation.
var (
	dummySalt     = make([]byte, cryptox.SaltSize)
	dummyVerifier = make([]byte, 32)
)

type UserService struct {
	db          dbx.Conn
	repomanager repomanager.RepositoryManager
}

func NewUserService(db dbx.Conn, m repomanager.RepositoryManager) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
	}
}

// CreateDefaultAccount makes sure the admin account exists with password.
// An existing account gets its verifier replaced, so the configured
// password always wins.
func (s *UserService) CreateDefaultAccount(ctx context.Context, username, password string) (*models.User, error) {
	salt, verifier := cryptox.HashPassword(password)

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetUserByLogin(ctx, username)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			user, err = repo.Create(ctx, &models.User{UserName: username, Salt: salt, Verifier: verifier})
			return err
		case err != nil:
			return err
		}

		if err := repo.UpdateVerifier(ctx, existing.ID, salt, verifier); err != nil {
			return err
		}
		existing.Salt, existing.Verifier = salt, verifier
		user = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating default account: %w", err)
	}

	return user, nil
}

// Verify checks a username/password pair. Unknown users and wrong passwords
// both yield common.ErrorUnauthorized.
func (s *UserService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.CheckPassword(password, dummySalt, dummyVerifier)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !cryptox.CheckPassword(password, user.Salt, user.Verifier) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
