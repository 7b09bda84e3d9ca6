package entries

import (
	"context"

	"github.com/dmitrijs2005/learningjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	GetBySlug(ctx context.Context, slug string) (*models.Entry, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, tag string) ([]*models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) error
	DeleteBySlug(ctx context.Context, slug string) error
}
