// Package server wires the journal together: logging, database and schema,
// the admin account, optional archiving and the HTTP server.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/logging"
	"github.com/dmitrijs2005/learningjournal/internal/server/archive"
	"github.com/dmitrijs2005/learningjournal/internal/server/auth"
	"github.com/dmitrijs2005/learningjournal/internal/server/config"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/learningjournal/internal/server/services"
	"github.com/dmitrijs2005/learningjournal/internal/server/web"
	"github.com/jmoiron/sqlx"
)

const secretKeySize = 32

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sqlx.DB
	server *web.Server
}

// NewApp prepares everything the server needs. Logs go to logOut.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}
	if err := app.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config
	repos := repomanager.NewSQLRepositoryManager(app.db)

	if c.ResetOnStart {
		app.logger.Warn(ctx, "reset_on_start is enabled: dropping and recreating all tables")
	}
	if err := repos.RunMigrations(ctx, c.ResetOnStart); err != nil {
		return fmt.Errorf("schema init error: %w", err)
	}

	if _, err := services.NewUserService(app.db, repos).CreateDefaultAccount(ctx, c.AdminUsername, c.AdminPassword); err != nil {
		return err
	}

	if c.ResetOnStart && c.SeedOnReset {
		if err := services.Seed(ctx, app.db, repos); err != nil {
			return fmt.Errorf("seed error: %w", err)
		}
		app.logger.Info(ctx, "sample entries added")
	}

	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		secret = common.GenerateRandByteArray(secretKeySize)
		app.logger.Info(ctx, "no secret_key configured, sessions will not survive a restart")
	}
	gate := auth.NewGate(secret, c.SessionDuration, c.RememberDuration, c.CookieSecure, app.logger)

	var archiver archive.Archiver = archive.Nop{}
	if c.S3Bucket != "" {
		s3a, err := archive.NewS3Archiver(ctx, archive.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
		})
		if err != nil {
			return fmt.Errorf("archive init error: %w", err)
		}
		archiver = s3a
		app.logger.Info(ctx, "archiving deleted entries", "bucket", c.S3Bucket)
	}

	srv, err := web.NewServer(c.Addr, app.db, repos, gate, archiver, app.logger)
	if err != nil {
		return fmt.Errorf("http server init error: %w", err)
	}
	app.server = srv
	return nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
	return runErr
}
