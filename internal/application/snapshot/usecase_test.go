package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/orders"
	"github.com/jhoicas/bikefactory/internal/application/production"
	"github.com/jhoicas/bikefactory/internal/application/snapshot"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/catalog"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/infrastructure/memory"
	infra "github.com/jhoicas/bikefactory/internal/infrastructure/snapshot"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

var (
	admin = access.Principal{Username: "admin", Role: entity.RoleAdmin}
	fixed = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	cat := catalog.Default()
	st, err := cat.Seed(func(p string) (string, error) { return "h:" + p, nil })
	require.NoError(t, err)
	store, err := memory.NewStore(cat.Stations, st)
	require.NoError(t, err)
	return store
}

// Deja la sesión con ítems en la línea, una bicicleta y un pedido.
func populate(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	runner := memory.NewTxRunner(store)
	prod := production.NewUseCase(runner, logger.Nop())
	ord := orders.NewUseCase(runner, logger.Nop())

	_, err := prod.StartItem(ctx, admin, "Sport")
	require.NoError(t, err)
	_, err = prod.Advance(ctx, admin, 0)
	require.NoError(t, err)
	_, err = prod.CompleteAssembly(ctx, admin, "Tour")
	require.NoError(t, err)
	_, err = ord.Create(ctx, admin, dto.CreateOrderRequest{ModelID: "Tour", CustomerName: "Ana"})
	require.NoError(t, err)
}

func TestLoadSave_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	populate(t, src)
	uc := snapshot.NewUseCase(src, infra.JSONCodec{}, nil, logger.Nop(), func() time.Time { return fixed })

	data, err := uc.Save(ctx)
	require.NoError(t, err)

	dst := newStore(t)
	require.NoError(t, snapshot.NewUseCase(dst, infra.JSONCodec{}, nil, logger.Nop(), nil).Load(ctx, data))

	want, _ := src.Export(ctx)
	got, _ := dst.Export(ctx)
	assert.Equal(t, want.StationCounts(), got.StationCounts())
	assert.Equal(t, want.Parts, got.Parts)
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, 1, got.Bikes["Tour"].Unsold)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, want.Orders[0].ID, got.Orders[0].ID)

	again, err := snapshot.NewUseCase(dst, infra.JSONCodec{}, nil, logger.Nop(), func() time.Time { return fixed }).Save(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestLoad_CorruptoNoTocaEstado(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	populate(t, store)
	before, _ := store.Export(ctx)
	uc := snapshot.NewUseCase(store, infra.JSONCodec{}, nil, logger.Nop(), nil)

	err := uc.Load(ctx, []byte(`{"users": [], "parts": {}, "stations": [], "bikes": {}}`))
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)

	after, _ := store.Export(ctx)
	assert.Equal(t, before, after)
}

func TestPersistRestore_ArchivoYSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file, err := infra.NewFileStore(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	db, err := infra.NewSQLiteStore(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for name, backend := range map[string]snapshot.Store{"file": file, "sqlite": db} {
		fresh := newStore(t)
		uc := snapshot.NewUseCase(fresh, infra.JSONCodec{}, backend, logger.Nop(), nil)
		found, err := uc.Restore(ctx)
		require.NoError(t, err, name)
		assert.False(t, found, name)

		src := newStore(t)
		populate(t, src)
		require.NoError(t, snapshot.NewUseCase(src, infra.JSONCodec{}, backend, logger.Nop(), nil).Persist(ctx), name)

		found, err = uc.Restore(ctx)
		require.NoError(t, err, name)
		assert.True(t, found, name)
		got, _ := fresh.Export(ctx)
		assert.Equal(t, 1, got.Bikes["Tour"].Unsold, name)
		assert.Equal(t, 1, got.StationCounts()[1], name)
	}
}

func TestPersist_SinBackend(t *testing.T) {
	uc := snapshot.NewUseCase(newStore(t), infra.JSONCodec{}, nil, logger.Nop(), nil)
	assert.Error(t, uc.Persist(context.Background()))
	_, err := uc.Restore(context.Background())
	assert.Error(t, err)
}
