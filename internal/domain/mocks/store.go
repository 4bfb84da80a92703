// Package mocks provides in-memory test doubles for the domain ports.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/ports"
)

// Store is an in-memory implementation of ports.Store.
// Set Err to make every call fail; set SaveAssociationErr to fail only
// edge saves (useful for exercising rollback).
type Store struct {
	People       []*entities.Person
	Interests    []*entities.Interest
	Associations []entities.Association

	Err                error
	SaveAssociationErr error

	// TxCount counts WithinTx calls; Rollbacks counts failed ones.
	TxCount   int
	Rollbacks int
}

var _ ports.Store = (*Store)(nil)

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the store.
func (m *Store) Close() error {
	return nil
}

// WithinTx runs fn and restores the previous contents if it fails.
func (m *Store) WithinTx(_ context.Context, fn func(ports.Store) error) error {
	if m.Err != nil {
		return m.Err
	}
	m.TxCount++

	people := clonePeople(m.People)
	interests := cloneInterests(m.Interests)
	assocs := append([]entities.Association(nil), m.Associations...)

	if err := fn(m); err != nil {
		m.People, m.Interests, m.Associations = people, interests, assocs
		m.Rollbacks++
		return err
	}
	return nil
}

// SavePerson saves a person, assigning an ID if it doesn't have one.
func (m *Store) SavePerson(_ context.Context, p *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range m.People {
		if existing.ID == p.ID || (p.ID == "" && existing.NormalizedName() == p.NormalizedName()) {
			existing.Name = p.Name
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	stored := *p
	m.People = append(m.People, &stored)
	return nil
}

// SaveInterest saves an interest, assigning an ID if it doesn't have one.
func (m *Store) SaveInterest(_ context.Context, i *entities.Interest) error {
	if m.Err != nil {
		return m.Err
	}
	if err := i.Validate(); err != nil {
		return err
	}
	for _, existing := range m.Interests {
		if existing.ID == i.ID || (i.ID == "" && existing.NormalizedName() == i.NormalizedName()) {
			existing.Name = i.Name
			i.ID = existing.ID
			i.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	stored := *i
	m.Interests = append(m.Interests, &stored)
	return nil
}

// FindPersonByName finds a person by normalized name.
func (m *Store) FindPersonByName(_ context.Context, name string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	key := entities.NormalizeName(name)
	for _, p := range m.People {
		if p.NormalizedName() == key {
			found := *p
			return &found, nil
		}
	}
	return nil, nil
}

// FindInterestByName finds an interest by normalized name.
func (m *Store) FindInterestByName(_ context.Context, name string) (*entities.Interest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	key := entities.NormalizeName(name)
	for _, i := range m.Interests {
		if i.NormalizedName() == key {
			found := *i
			return &found, nil
		}
	}
	return nil, nil
}

// FindAllPeople returns copies of every person in insertion order.
func (m *Store) FindAllPeople(_ context.Context) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return clonePeople(m.People), nil
}

// FindAllInterests returns copies of every interest in insertion order.
func (m *Store) FindAllInterests(_ context.Context) ([]*entities.Interest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return cloneInterests(m.Interests), nil
}

// SaveAssociation stores an edge unless the pair already exists.
func (m *Store) SaveAssociation(_ context.Context, a *entities.Association) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SaveAssociationErr != nil {
		return m.SaveAssociationErr
	}
	for _, existing := range m.Associations {
		if existing.PersonID == a.PersonID && existing.InterestID == a.InterestID {
			return nil
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.Associations = append(m.Associations, *a)
	return nil
}

// FindAllAssociations returns every edge in insertion order.
func (m *Store) FindAllAssociations(_ context.Context) ([]entities.Association, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entities.Association(nil), m.Associations...), nil
}

// CountPeople returns the number of people.
func (m *Store) CountPeople(_ context.Context) (int, error) {
	return len(m.People), m.Err
}

// CountInterests returns the number of interests.
func (m *Store) CountInterests(_ context.Context) (int, error) {
	return len(m.Interests), m.Err
}

// CountAssociations returns the number of edges.
func (m *Store) CountAssociations(_ context.Context) (int, error) {
	return len(m.Associations), m.Err
}

func clonePeople(in []*entities.Person) []*entities.Person {
	out := make([]*entities.Person, len(in))
	for i, p := range in {
		c := *p
		out[i] = &c
	}
	return out
}

func cloneInterests(in []*entities.Interest) []*entities.Interest {
	out := make([]*entities.Interest, len(in))
	for i, it := range in {
		c := *it
		out[i] = &c
	}
	return out
}
