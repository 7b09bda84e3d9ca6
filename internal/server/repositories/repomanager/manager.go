package repomanager

import (
	"context"

	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, reset bool) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
