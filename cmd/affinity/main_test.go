package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory for the duration of t.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_SeedAndReport(t *testing.T) {
	dir := chdirTemp(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Affinity initialized successfully!")
	assert.FileExists(t, filepath.Join(dir, ".affinity", "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".affinity", "affinity.db"))

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 2 people, 2 interests, 3 links.\n", out)

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	out, err = execute(t, "report")
	require.NoError(t, err)
	assert.Equal(t, "Sabrina:\n shares Volleyball with:\n Jim\nJim:\n shares Volleyball with:\n Sabrina\n shares Art galleries with:\n", out)
}

func TestCLI_InitWithDBPath(t *testing.T) {
	dir := chdirTemp(t)

	out, err := execute(t, "--db", "data/people.db", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("data", "people.db"))
	assert.FileExists(t, filepath.Join(dir, "data", "people.db"))

	data, err := os.ReadFile(filepath.Join(dir, ".affinity", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: data/people.db")

	// Later commands pick the path up from the config file.
	_, err = execute(t, "seed")
	require.NoError(t, err)
	out, err = execute(t, "people")
	require.NoError(t, err)
	assert.Contains(t, out, "People (2 total):")
	assert.NoFileExists(t, filepath.Join(dir, ".affinity", "affinity.db"))
}

func TestCLI_LinkAndList(t *testing.T) {
	chdirTemp(t)

	out, err := execute(t, "--db", "links.db", "link", "Ana", "Chess")
	require.NoError(t, err)
	assert.Equal(t, "Linked Ana -- Chess\n", out)

	_, err = execute(t, "--db", "links.db", "link", "ben", "chess")
	require.NoError(t, err)

	out, err = execute(t, "--db", "links.db", "report", "--format", "lines")
	require.NoError(t, err)
	assert.Equal(t, "Ana shares Chess with: ben\nben shares Chess with: Ana\n", out)

	out, err = execute(t, "--db", "links.db", "interests")
	require.NoError(t, err)
	assert.Contains(t, out, "Interests (1 total):")
	assert.Contains(t, out, "Ana, ben")

	out, err = execute(t, "--db", "links.db", "people")
	require.NoError(t, err)
	assert.Contains(t, out, "People (2 total):")
}

func TestCLI_Import(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "links.csv")
	require.NoError(t, os.WriteFile(path, []byte("person,interest\nSabrina,Volleyball\nJim,Volleyball\n"), 0644))

	out, err := execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Linked: 2")

	out, err = execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Linked: 0, 2 skipped (already linked)")
}

func TestCLI_Errors(t *testing.T) {
	chdirTemp(t)

	t.Run("invalid report format", func(t *testing.T) {
		_, err := execute(t, "report", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("init twice", func(t *testing.T) {
		_, err := execute(t, "init")
		require.NoError(t, err)
		_, err = execute(t, "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")
	})

	t.Run("link needs two args", func(t *testing.T) {
		_, err := execute(t, "link", "Ana")
		require.Error(t, err)
	})
}
