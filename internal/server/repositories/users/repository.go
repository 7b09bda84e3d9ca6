package users

import (
	"context"

	"github.com/dmitrijs2005/learningjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateVerifier(ctx context.Context, id string, salt, verifier []byte) error
}
