// Package archive keeps a copy of deleted journal entries in S3-compatible
// object storage.
package archive

import (
	"context"

	"github.com/dmitrijs2005/learningjournal/internal/server/models"
)

// Archiver stores an entry before it is removed from the database.
type Archiver interface {
	Archive(ctx context.Context, entry *models.Entry) error
}

// Nop is used when no bucket is configured.
type Nop struct{}

func (Nop) Archive(context.Context, *models.Entry) error { return nil }
