package main

import (
	"context"
	"os"

	"github.com/Flammans/artanova/internal/localstore"
	"github.com/Flammans/artanova/internal/repositories"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/session"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	if level, err := log.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	db, err := localstore.NewDatabase(config.Storage.Path)
	if err != nil {
		logger.Fatalf("failed to open local database: %v", err)
	}
	defer db.Close()

	localstore.ConfigureDatabase(db, config.Storage.MaxOpenConns, config.Storage.MaxIdleConns)
	if err := localstore.RunMigrations(db); err != nil {
		logger.Fatalf("failed to migrate local database: %v", err)
	}

	// The session store authenticates through the client, and the client
	// reads its bearer token from the store; the indirection below breaks
	// the construction cycle while keeping token reads at call time.
	var store *session.Store
	client := services.NewClient(config.API.BaseURL, nil, services.TokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}))

	store = session.NewStore(localstore.NewKV(db), client, logger)
	if err := store.Hydrate(); err != nil {
		logger.Warn("failed to restore saved session", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Client:   client,
		Session:  store,
		Artworks: repositories.NewArtworkRepository(db),
		DB:       db,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "artanova",
		Usage:    "Browse the artwork catalog and curate collections",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
