package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/ports"
)

// SeedResult reports what a seeding pass did.
type SeedResult struct {
	Skipped      bool `json:"skipped"`
	People       int  `json:"people"`
	Interests    int  `json:"interests"`
	Associations int  `json:"associations"`
}

// SeedService writes the sample data set.
type SeedService struct {
	store  ports.Store
	graphs *GraphService
	logger *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(store ports.Store, graphs *GraphService, logger *zap.Logger) *SeedService {
	return &SeedService{
		store:  store,
		graphs: graphs,
		logger: logger,
	}
}

// SampleGraph builds the sample data set: Sabrina and Jim both like
// volleyball, and Jim also likes art galleries.
func SampleGraph() *entities.Graph {
	volleyball := entities.NewInterest("Volleyball")
	art := entities.NewInterest("Art galleries")

	sabrina := entities.NewPerson("Sabrina")
	jim := entities.NewPerson("Jim")

	g := entities.NewGraph()
	// People first so the report lists them in this order.
	g.AddPersonNode(sabrina)
	g.AddPersonNode(jim)
	g.AddInterestNode(volleyball)
	g.AddInterestNode(art)

	g.AddInterest(sabrina, volleyball)
	g.AddInterest(jim, volleyball)
	g.AddInterest(jim, art)
	return g
}

// Seed saves the sample graph unless the store already holds people. The
// check and the save run in one transaction.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	g := SampleGraph()
	result := &SeedResult{}
	restore := forgetOnFailure(g)

	err := s.store.WithinTx(ctx, func(tx ports.Store) error {
		count, err := tx.CountPeople(ctx)
		if err != nil {
			return fmt.Errorf("counting people: %w", err)
		}
		if count > 0 {
			s.logger.Info("store already seeded, skipping", zap.Int("people", count))
			result.Skipped = true
			return nil
		}

		if err := s.graphs.SaveTx(ctx, tx, g); err != nil {
			return fmt.Errorf("saving sample graph: %w", err)
		}
		return nil
	})
	if err != nil {
		restore()
		return nil, err
	}
	if result.Skipped {
		return result, nil
	}

	result.People = len(g.People())
	result.Interests = len(g.Interests())
	result.Associations = g.Len()
	return result, nil
}
