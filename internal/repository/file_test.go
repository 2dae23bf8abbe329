package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_EnsureInitialized(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	repo := NewFileRepository(path)

	seeded, err := repo.EnsureInitialized(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.EnsureInitialized(ctx)
	require.NoError(t, err)
	assert.False(t, seeded, "second call must not rewrite the document")

	data, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SeedDataset(), data)
}

func TestFileRepository_KeepsExistingDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewFileRepository(path)

	existing := model.SeedDataset()
	existing.Admin.Password = "changed"
	require.NoError(t, repo.Save(ctx, existing))

	seeded, err := repo.EnsureInitialized(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	data, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "changed", data.Admin.Password)
}

func TestFileRepository_SaveFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(ctx, &model.Dataset{}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var members map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &members))
	assert.JSONEq(t, `[]`, string(members["services"]))
	assert.JSONEq(t, `[]`, string(members["appointments"]))
	assert.Contains(t, string(raw), "\n  \"services\": []")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileRepository_LoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileRepository(filepath.Join(dir, "none.json")).Load(ctx)
		assert.ErrorIs(t, err, ErrNoDocument)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := NewFileRepository(path).Load(ctx)
		assert.Error(t, err)
	})

	t.Run("missing member", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"services":[],"appointments":[],"admin":{}}`), 0o644))

		_, err := NewFileRepository(path).Load(ctx)
		assert.ErrorContains(t, err, "businessData")
	})
}

func TestFileRepository_Ping(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "data.json"))

	assert.Error(t, repo.Ping(ctx))

	_, err := repo.EnsureInitialized(ctx)
	require.NoError(t, err)
	assert.NoError(t, repo.Ping(ctx))
}
