// Package handlers contains the application use cases invoked by the CLI.
package handlers

import (
	"context"

	"github.com/ersonp/affinity/internal/domain/services"
)

// SeedHandler handles seeding of the sample data set.
type SeedHandler struct {
	seedService *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
	}
}

// HandleSeed writes the sample data unless the store already has people.
func (h *SeedHandler) HandleSeed(ctx context.Context) (*services.SeedResult, error) {
	return h.seedService.Seed(ctx)
}
