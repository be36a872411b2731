// Package app is the composition root: it builds the catalog database, the
// blob cache, the cloud client and the keeper from one Config, and owns
// their lifecycle.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/platekeeper/platekeeper/internal/blobcache"
	"github.com/platekeeper/platekeeper/internal/catalog"
	"github.com/platekeeper/platekeeper/internal/config"
	"github.com/platekeeper/platekeeper/internal/filex"
	"github.com/platekeeper/platekeeper/internal/keeper"
	"github.com/platekeeper/platekeeper/internal/logging"
	"github.com/platekeeper/platekeeper/internal/optimizer"
	"github.com/platekeeper/platekeeper/internal/remote"

	_ "modernc.org/sqlite"
)

type App struct {
	Config *config.Config
	Logger logging.Logger
	Keeper *keeper.Keeper

	// Report is the outcome of the startup migration pass, set by Start.
	Report *keeper.MigrationReport

	db *sql.DB
}

// New assembles the application. Nothing runs yet; call Start to launch the
// mutation loop and the one-time migration pass.
func New(ctx context.Context, cfg *config.Config, verbose bool) (*App, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	db, err := catalog.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	blobs, err := blobcache.New(cfg.ImagesDir())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare image directory: %w", err)
	}

	status := remote.NewStatus()
	cloud, err := remote.NewS3Client(cfg, status, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build cloud client: %w", err)
	}

	opt := optimizer.New(cfg.MaxImageDimension, cfg.MaxImageBytes)
	k := keeper.New(catalog.NewStore(db), blobs, opt, cloud, status, cfg.MemoryCacheTTL, logger)

	return &App{Config: cfg, Logger: logger, Keeper: k, db: db}, nil
}

// Start launches the keeper's mutation loop, then runs the cloud migration
// pass. After the first ever run the pass is a single flag read.
func (a *App) Start(ctx context.Context) error {
	a.Keeper.Start(ctx)

	report, err := a.Keeper.MigrateLocalOnly(ctx)
	if err != nil {
		return fmt.Errorf("startup migration failed: %w", err)
	}
	a.Report = report
	return nil
}

// Close drains the keeper and closes the catalog database.
func (a *App) Close() error {
	a.Keeper.Close()
	return a.db.Close()
}
