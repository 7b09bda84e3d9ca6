package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/learningjournal/internal/server"
	"github.com/dmitrijs2005/learningjournal/internal/server/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := config.PromptPassword(cfg, int(os.Stdin.Fd()), os.Stderr); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
