package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/infrastructure/snapshot"
)

func TestFileStore_GuardaYLee(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s, err := snapshot.NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	data, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, data, "sin archivo todavía")

	require.NoError(t, s.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, s.Save(ctx, []byte(`{"v":2}`)))

	data, err = s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestSQLiteStore_UltimaFila(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := snapshot.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, path, s.Path())

	data, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, s.Save(ctx, []byte(`{"v":2}`)))

	data, err = s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(data))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
