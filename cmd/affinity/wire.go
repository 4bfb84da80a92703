//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/ersonp/affinity/internal/application/handlers"
	"github.com/ersonp/affinity/internal/domain/ports"
	"github.com/ersonp/affinity/internal/domain/services"
	"github.com/ersonp/affinity/internal/infrastructure/config"
	"github.com/ersonp/affinity/internal/infrastructure/relationaldb/sqlite"
)

// depsSet provides everything the commands need from a loaded config.
var depsSet = wire.NewSet(
	provideLogger,
	provideStore,
	wire.Bind(new(ports.Store), new(*sqlite.Repository)),
	services.NewGraphService,
	services.NewSeedService,
	services.NewImportService,
	handlers.NewSeedHandler,
	handlers.NewGraphHandler,
	handlers.NewImportHandler,
	wire.Struct(new(Deps), "*"),
)

// initializeDeps builds the command dependencies for cfg.
func initializeDeps(ctx context.Context, cfg *config.Config) (*Deps, func(), error) {
	wire.Build(depsSet)
	return nil, nil, nil
}
