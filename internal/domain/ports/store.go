// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/affinity/internal/domain/entities"
)

// Store defines the persistence operations for people, interests and the
// associations between them.
type Store interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error

	// WithinTx runs fn inside a transaction. fn receives a Store bound to
	// the transaction; the transaction commits when fn returns nil.
	WithinTx(ctx context.Context, fn func(Store) error) error

	// Person operations

	// SavePerson saves a person, assigning p.ID when it is empty.
	// A person with the same normalized name is updated in place and its
	// existing ID is written back to p.
	SavePerson(ctx context.Context, p *entities.Person) error

	// FindPersonByName finds a person by normalized name. Returns nil if absent.
	FindPersonByName(ctx context.Context, name string) (*entities.Person, error)

	// FindAllPeople returns every person in insertion order.
	FindAllPeople(ctx context.Context) ([]*entities.Person, error)

	// CountPeople returns the number of people.
	CountPeople(ctx context.Context) (int, error)

	// Interest operations

	// SaveInterest saves an interest, assigning i.ID when it is empty.
	SaveInterest(ctx context.Context, i *entities.Interest) error

	// FindInterestByName finds an interest by normalized name. Returns nil if absent.
	FindInterestByName(ctx context.Context, name string) (*entities.Interest, error)

	// FindAllInterests returns every interest in insertion order.
	FindAllInterests(ctx context.Context) ([]*entities.Interest, error)

	// CountInterests returns the number of interests.
	CountInterests(ctx context.Context) (int, error)

	// Association operations

	// SaveAssociation stores a person/interest edge. Saving an existing
	// pair is a no-op.
	SaveAssociation(ctx context.Context, a *entities.Association) error

	// FindAllAssociations returns every edge in insertion order.
	FindAllAssociations(ctx context.Context) ([]entities.Association, error)

	// CountAssociations returns the number of edges.
	CountAssociations(ctx context.Context) (int, error)
}
