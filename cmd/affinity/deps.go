package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/application/handlers"
	"github.com/ersonp/affinity/internal/infrastructure/config"
	"github.com/ersonp/affinity/internal/infrastructure/logging"
	"github.com/ersonp/affinity/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Logger        *zap.Logger
	SeedHandler   *handlers.SeedHandler
	GraphHandler  *handlers.GraphHandler
	ImportHandler *handlers.ImportHandler
}

// withDeps loads config, builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deps, cleanup, err := initializeDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(deps)
}

// loadConfig reads the config for the current directory and applies the
// global flag overrides.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if globalDBPath != "" {
		cfg.SQLite.Path = config.ResolveDatabasePath(cwd, globalDBPath)
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}
	return cfg, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// provideStore opens the SQLite database, creating its directory and schema
// when missing.
func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlite.Repository, func(), error) {
	if err := ensureParentDir(cfg.SQLite.Path); err != nil {
		return nil, nil, err
	}

	repo, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return nil, nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	logger.Debug("database opened", zap.String("path", repo.Path()))

	cleanup := func() {
		if err := repo.Close(); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}
	return repo, cleanup, nil
}

func ensureParentDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
