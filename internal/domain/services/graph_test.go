package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/mocks"
)

func newTestGraphService(t *testing.T) (*GraphService, *mocks.Store) {
	t.Helper()
	store := mocks.NewStore()
	return NewGraphService(store, zap.NewNop()), store
}

func TestGraphService_SaveAssignsIDs(t *testing.T) {
	svc, store := newTestGraphService(t)
	ctx := context.Background()
	g := SampleGraph()

	require.NoError(t, svc.Save(ctx, g))

	for _, p := range g.People() {
		assert.NotEmpty(t, p.ID, "person %s", p.Name)
	}
	for _, i := range g.Interests() {
		assert.NotEmpty(t, i.ID, "interest %s", i.Name)
	}
	assert.Len(t, store.People, 2)
	assert.Len(t, store.Interests, 2)
	assert.Len(t, store.Associations, 3)
	assert.Equal(t, 1, store.TxCount)
}

func TestGraphService_SaveRollsBack(t *testing.T) {
	svc, store := newTestGraphService(t)
	store.SaveAssociationErr = errors.New("disk full")

	err := svc.Save(context.Background(), SampleGraph())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Empty(t, store.People)
	assert.Empty(t, store.Interests)
	assert.Empty(t, store.Associations)
	assert.Equal(t, 1, store.Rollbacks)
}

func TestGraphService_SaveFailureClearsAssignedIDs(t *testing.T) {
	svc, store := newTestGraphService(t)
	ctx := context.Background()

	saved := entities.NewPerson("Ana")
	require.NoError(t, store.SavePerson(ctx, saved))
	savedID := saved.ID

	g := SampleGraph()
	g.AddInterest(saved, g.Interests()[0])
	store.SaveAssociationErr = errors.New("disk full")

	require.Error(t, svc.Save(ctx, g))

	for _, p := range g.People() {
		if p == saved {
			assert.Equal(t, savedID, p.ID, "ids known before the save are kept")
			continue
		}
		assert.Empty(t, p.ID, "person %s", p.Name)
		assert.True(t, p.CreatedAt.IsZero())
	}
	for _, i := range g.Interests() {
		assert.Empty(t, i.ID, "interest %s", i.Name)
	}

	t.Run("retry succeeds from a clean graph", func(t *testing.T) {
		store.SaveAssociationErr = nil
		require.NoError(t, svc.Save(ctx, g))
		assert.Len(t, store.People, 3)
		assert.Len(t, store.Associations, 4)
	})
}

func TestGraphService_LoadRoundTrip(t *testing.T) {
	svc, _ := newTestGraphService(t)
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, SampleGraph()))

	g, err := svc.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{
		"Sabrina shares Volleyball with: Jim",
		"Jim shares Volleyball with: Sabrina",
		"Jim shares Art galleries with:",
	}, reportLines(Report(g)))
}

func TestGraphService_LoadUnknownReferences(t *testing.T) {
	tests := []struct {
		name    string
		assoc   entities.Association
		wantErr string
	}{
		{
			name:    "unknown person",
			assoc:   entities.Association{PersonID: "ghost", InterestID: "i1"},
			wantErr: "unknown person ghost",
		},
		{
			name:    "unknown interest",
			assoc:   entities.Association{PersonID: "p1", InterestID: "ghost"},
			wantErr: "unknown interest ghost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestGraphService(t)
			store.People = []*entities.Person{{ID: "p1", Name: "Sabrina"}}
			store.Interests = []*entities.Interest{{ID: "i1", Name: "Volleyball"}}
			store.Associations = []entities.Association{tt.assoc}

			_, err := svc.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGraphService_LoadStoreError(t *testing.T) {
	svc, store := newTestGraphService(t)
	store.Err = errors.New("connection lost")

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finding people")
}

func TestGraphService_Link(t *testing.T) {
	svc, store := newTestGraphService(t)
	ctx := context.Background()

	result, err := svc.Link(ctx, "Sabrina", "Volleyball")
	require.NoError(t, err)
	assert.Equal(t, "Sabrina", result.Person.Name)
	assert.Equal(t, "Volleyball", result.Interest.Name)
	assert.NotEmpty(t, result.Person.ID)

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.Link(ctx, "sabrina", "VOLLEYBALL")
		require.NoError(t, err)
		assert.Equal(t, result.Person.ID, again.Person.ID)
		assert.Equal(t, result.Interest.ID, again.Interest.ID)
		assert.Len(t, store.People, 1)
		assert.Len(t, store.Interests, 1)
		assert.Len(t, store.Associations, 1)
	})

	t.Run("reuses existing nodes", func(t *testing.T) {
		_, err := svc.Link(ctx, "Jim", "Volleyball")
		require.NoError(t, err)
		assert.Len(t, store.People, 2)
		assert.Len(t, store.Interests, 1)
		assert.Len(t, store.Associations, 2)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := svc.Link(ctx, "", "Volleyball")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidName)
		assert.Len(t, store.People, 2)
	})
}
