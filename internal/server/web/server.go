// Package web serves the journal over HTTP with fiber: server-rendered HTML
// pages, a JSON export and a health check.
package web

import (
	"context"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/logging"
	"github.com/dmitrijs2005/learningjournal/internal/server/archive"
	"github.com/dmitrijs2005/learningjournal/internal/server/auth"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/repomanager"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	db       *sqlx.DB
	repos    repomanager.RepositoryManager
	gate     *auth.Gate
	archiver archive.Archiver
	views    *views
	logger   logging.Logger
	app      *fiber.App
}

func NewServer(address string, db *sqlx.DB, repos repomanager.RepositoryManager, gate *auth.Gate,
	archiver archive.Archiver, l logging.Logger) (*Server, error) {

	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	s := &Server{
		address:  address,
		db:       db,
		repos:    repos,
		gate:     gate,
		archiver: archiver,
		views:    v,
		logger:   l.With("module", "http_server"),
	}
	s.app = s.routes()
	return s, nil
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "learning-journal",
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	app.Use(s.accessLog())
	app.Use(recover.New())

	app.Get("/healthz", s.healthz)

	app.Use(s.gate.Identify())
	app.Use(s.csrfGuard())
	app.Use(s.withConn())

	authed := s.gate.RequireAuthenticated()

	app.Get("/", s.index)
	app.Get("/entries", s.index)
	app.Get("/entries.json", authed, s.export)

	app.Get("/login", s.loginForm)
	app.Post("/login", s.loginSubmit)
	app.Get("/logout", s.logout)

	app.Get("/entries/new", authed, s.newForm)
	app.Post("/entries/new", authed, s.newSubmit)
	app.Get("/entries/:slug", s.detail)
	app.Get("/entries/:slug/edit", authed, s.editForm)
	app.Post("/entries/:slug/edit", authed, s.editSubmit)
	app.Get("/entries/:slug/delete", authed, s.delete)

	return app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
