// Package services contains the journal's business logic. Services are
// cheap to build and are constructed per request around the request's
// database connection.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/logging"
	"github.com/dmitrijs2005/learningjournal/internal/server/archive"
	"github.com/dmitrijs2005/learningjournal/internal/server/auth"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/learningjournal/internal/slug"
)

// maxSlugAttempts bounds retries when a concurrent insert takes the slug
// between the probe and the INSERT.
const maxSlugAttempts = 5

type EntryService struct {
	db          dbx.Conn
	repomanager repomanager.RepositoryManager
	archiver    archive.Archiver
	log         logging.Logger
}

func NewEntryService(db dbx.Conn, m repomanager.RepositoryManager, a archive.Archiver, log logging.Logger) *EntryService {
	if a == nil {
		a = archive.Nop{}
	}
	return &EntryService{
		db:          db,
		repomanager: m,
		archiver:    a,
		log:         log,
	}
}

// Create validates f and stores a new entry under a fresh unique slug.
func (s *EntryService) Create(ctx context.Context, f EntryFields) (*models.Entry, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}

	entry, err := f.validate()
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		var created *models.Entry
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			created, err = insertWithSlug(ctx, s.repomanager.Entries(tx), entry)
			return err
		})
		if err == nil {
			s.log.Info(ctx, "entry created", "slug", created.Slug, "id", created.ID)
			return created, nil
		}
		if !dbx.IsUniqueViolation(err) || attempt == maxSlugAttempts {
			return nil, fmt.Errorf("error creating entry: %w", err)
		}
		s.log.Warn(ctx, "slug taken concurrently, retrying", "title", entry.Title, "attempt", attempt)
	}
}

func insertWithSlug(ctx context.Context, repo entries.Repository, entry *models.Entry) (*models.Entry, error) {
	s, err := slug.Unique(ctx, entry.Title, repo.SlugExists)
	if err != nil {
		return nil, err
	}

	e := *entry
	e.Slug = s
	return repo.Create(ctx, &e)
}

func (s *EntryService) GetBySlug(ctx context.Context, slug string) (*models.Entry, error) {
	return s.repomanager.Entries(s.db).GetBySlug(ctx, slug)
}

// List returns all entries in insertion order, or only those carrying every
// whitespace-separated token of tag.
func (s *EntryService) List(ctx context.Context, tag string) ([]*models.Entry, error) {
	tokens := strings.Fields(tag)

	// the store narrows by the first token, the rest is checked here
	prefilter := ""
	if len(tokens) > 0 {
		prefilter = tokens[0]
	}

	all, err := s.repomanager.Entries(s.db).List(ctx, prefilter)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return all, nil
	}

	result := make([]*models.Entry, 0, len(all))
	for _, e := range all {
		if e.HasTags(tokens) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Update overwrites the entry's fields. Its slug stays the same whatever
// the new title is. An unknown slug is reported as not found even when f
// is invalid.
func (s *EntryService) Update(ctx context.Context, slug string, f EntryFields) (*models.Entry, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}

	var updated *models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)

		e, err := repo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}

		changes, err := f.validate()
		if err != nil {
			return err
		}

		e.Title = changes.Title
		e.Date = changes.Date
		e.TimeSpent = changes.TimeSpent
		e.Learned = changes.Learned
		e.Resources = changes.Resources
		e.Tags = changes.Tags

		if err := repo.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "entry updated", "slug", slug)
	return updated, nil
}

// Delete removes the entry, archiving it first. A failed archive keeps the
// entry.
func (s *EntryService) Delete(ctx context.Context, slug string) error {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)

		e, err := repo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if err := s.archiver.Archive(ctx, e); err != nil {
			return err
		}
		return repo.DeleteBySlug(ctx, slug)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "entry deleted", "slug", slug)
	return nil
}
