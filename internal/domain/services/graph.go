package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/ports"
)

// GraphService moves the person/interest graph in and out of a store.
type GraphService struct {
	store  ports.Store
	logger *zap.Logger
}

// NewGraphService creates a new GraphService.
func NewGraphService(store ports.Store, logger *zap.Logger) *GraphService {
	return &GraphService{
		store:  store,
		logger: logger,
	}
}

// Load reads every person, interest and association and rebuilds the graph.
// Nodes keep store order, so reports iterate people as the store lists them.
func (s *GraphService) Load(ctx context.Context) (*entities.Graph, error) {
	people, err := s.store.FindAllPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding people: %w", err)
	}
	interests, err := s.store.FindAllInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding interests: %w", err)
	}
	assocs, err := s.store.FindAllAssociations(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding associations: %w", err)
	}

	g := entities.NewGraph()
	peopleByID := make(map[string]*entities.Person, len(people))
	for _, p := range people {
		peopleByID[p.ID] = p
		g.AddPersonNode(p)
	}
	interestsByID := make(map[string]*entities.Interest, len(interests))
	for _, i := range interests {
		interestsByID[i.ID] = i
		g.AddInterestNode(i)
	}

	for _, a := range assocs {
		p, ok := peopleByID[a.PersonID]
		if !ok {
			return nil, fmt.Errorf("association references unknown person %s", a.PersonID)
		}
		i, ok := interestsByID[a.InterestID]
		if !ok {
			return nil, fmt.Errorf("association references unknown interest %s", a.InterestID)
		}
		g.AddInterest(p, i)
	}

	s.logger.Debug("graph loaded",
		zap.Int("people", len(people)),
		zap.Int("interests", len(interests)),
		zap.Int("associations", g.Len()),
	)
	return g, nil
}

// Save persists every node of g and then every edge, in one transaction.
// Ids assigned by the store are written back into the graph's nodes. If the
// transaction fails, nodes that were unsaved before the call are unsaved again.
func (s *GraphService) Save(ctx context.Context, g *entities.Graph) error {
	restore := forgetOnFailure(g)
	err := s.store.WithinTx(ctx, func(tx ports.Store) error {
		return s.SaveTx(ctx, tx, g)
	})
	if err != nil {
		restore()
		return err
	}
	return nil
}

// SaveTx writes g through tx, which must already be inside a transaction.
// Callers own the rollback, including resetting ids (see Save).
func (s *GraphService) SaveTx(ctx context.Context, tx ports.Store, g *entities.Graph) error {
	for _, p := range g.People() {
		if err := tx.SavePerson(ctx, p); err != nil {
			return fmt.Errorf("saving person %q: %w", p.Name, err)
		}
	}
	for _, i := range g.Interests() {
		if err := tx.SaveInterest(ctx, i); err != nil {
			return fmt.Errorf("saving interest %q: %w", i.Name, err)
		}
	}
	for _, a := range g.Associations() {
		if err := tx.SaveAssociation(ctx, &a); err != nil {
			return fmt.Errorf("saving association %s/%s: %w", a.PersonID, a.InterestID, err)
		}
	}
	s.logger.Info("graph saved",
		zap.Int("people", len(g.People())),
		zap.Int("interests", len(g.Interests())),
		zap.Int("associations", g.Len()),
	)
	return nil
}

// forgetOnFailure records the nodes of g that have no id yet and returns a
// func that clears whatever a failed save assigned to them.
func forgetOnFailure(g *entities.Graph) func() {
	var people []*entities.Person
	for _, p := range g.People() {
		if p.ID == "" {
			people = append(people, p)
		}
	}
	var interests []*entities.Interest
	for _, i := range g.Interests() {
		if i.ID == "" {
			interests = append(interests, i)
		}
	}
	return func() {
		for _, p := range people {
			p.ID, p.CreatedAt = "", time.Time{}
		}
		for _, i := range interests {
			i.ID, i.CreatedAt = "", time.Time{}
		}
	}
}

// LinkResult describes the outcome of Link.
type LinkResult struct {
	Person   *entities.Person   `json:"person"`
	Interest *entities.Interest `json:"interest"`
}

// Link associates the named person with the named interest, creating either
// side if it does not exist yet. Linking an existing pair changes nothing.
func (s *GraphService) Link(ctx context.Context, personName, interestName string) (*LinkResult, error) {
	result := &LinkResult{}

	err := s.store.WithinTx(ctx, func(tx ports.Store) error {
		p, err := findOrCreatePerson(ctx, tx, personName)
		if err != nil {
			return err
		}
		i, err := findOrCreateInterest(ctx, tx, interestName)
		if err != nil {
			return err
		}

		if err := tx.SaveAssociation(ctx, &entities.Association{PersonID: p.ID, InterestID: i.ID}); err != nil {
			return fmt.Errorf("saving association: %w", err)
		}

		result.Person = p
		result.Interest = i
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("linked",
		zap.String("person", result.Person.Name),
		zap.String("interest", result.Interest.Name),
	)
	return result, nil
}

func findOrCreatePerson(ctx context.Context, store ports.Store, name string) (*entities.Person, error) {
	p, err := store.FindPersonByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if p != nil {
		return p, nil
	}
	p = entities.NewPerson(name)
	if err := store.SavePerson(ctx, p); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	return p, nil
}

func findOrCreateInterest(ctx context.Context, store ports.Store, name string) (*entities.Interest, error) {
	i, err := store.FindInterestByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding interest: %w", err)
	}
	if i != nil {
		return i, nil
	}
	i = entities.NewInterest(name)
	if err := store.SaveInterest(ctx, i); err != nil {
		return nil, fmt.Errorf("creating interest: %w", err)
	}
	return i, nil
}
