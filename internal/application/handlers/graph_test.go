package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/domain/mocks"
	"github.com/ersonp/affinity/internal/domain/ports"
	"github.com/ersonp/affinity/internal/domain/services"
	"github.com/ersonp/affinity/internal/infrastructure/config"
	"github.com/ersonp/affinity/internal/infrastructure/relationaldb/sqlite"
)

func newHandlers(store ports.Store) (*SeedHandler, *GraphHandler) {
	logger := zap.NewNop()
	graphs := services.NewGraphService(store, logger)
	return NewSeedHandler(services.NewSeedService(store, graphs, logger)), NewGraphHandler(graphs)
}

func shareLines(shares []services.Share) []string {
	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = s.Line()
	}
	return lines
}

func TestSeedThenReport_SQLite(t *testing.T) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	seed, graph := newHandlers(repo)

	result, err := seed.HandleSeed(ctx)
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	report, err := graph.HandleReport(ctx)
	require.NoError(t, err)
	assert.Len(t, report.People, 2)
	assert.Equal(t, []string{
		"Sabrina shares Volleyball with: Jim",
		"Jim shares Volleyball with: Sabrina",
		"Jim shares Art galleries with:",
	}, shareLines(report.Shares))

	t.Run("reseed leaves rows alone", func(t *testing.T) {
		again, err := seed.HandleSeed(ctx)
		require.NoError(t, err)
		assert.True(t, again.Skipped)

		n, err := repo.CountAssociations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("link adds to report", func(t *testing.T) {
		_, err := graph.HandleLink(ctx, "Sabrina", "Art galleries")
		require.NoError(t, err)

		report, err := graph.HandleReport(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Sabrina shares Volleyball with: Jim",
			"Sabrina shares Art galleries with: Jim",
			"Jim shares Volleyball with: Sabrina",
			"Jim shares Art galleries with: Sabrina",
		}, shareLines(report.Shares))
	})
}

func TestGraphHandler_Lists(t *testing.T) {
	store := mocks.NewStore()
	seed, graph := newHandlers(store)
	ctx := context.Background()

	_, err := seed.HandleSeed(ctx)
	require.NoError(t, err)

	people, err := graph.HandleListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Sabrina", people[0].Person.Name)
	assert.Equal(t, []string{"Volleyball"}, people[0].Interests)
	assert.Equal(t, "Jim", people[1].Person.Name)
	assert.Equal(t, []string{"Volleyball", "Art galleries"}, people[1].Interests)

	interests, err := graph.HandleListInterests(ctx)
	require.NoError(t, err)
	require.Len(t, interests, 2)
	assert.Equal(t, "Volleyball", interests[0].Interest.Name)
	assert.Equal(t, []string{"Sabrina", "Jim"}, interests[0].People)
	assert.Equal(t, []string{"Jim"}, interests[1].People)
}

func TestGraphHandler_StoreErrors(t *testing.T) {
	store := mocks.NewStore()
	store.Err = errors.New("boom")
	_, graph := newHandlers(store)
	ctx := context.Background()

	_, err := graph.HandleReport(ctx)
	assert.ErrorContains(t, err, "loading graph")

	_, err = graph.HandleListPeople(ctx)
	assert.ErrorContains(t, err, "boom")

	_, err = graph.HandleListInterests(ctx)
	assert.ErrorContains(t, err, "boom")
}
