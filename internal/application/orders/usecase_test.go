package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/orders"
	"github.com/jhoicas/bikefactory/internal/application/production"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
	"github.com/jhoicas/bikefactory/internal/infrastructure/memory"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

var (
	admin  = access.Principal{Username: "admin", Role: entity.RoleAdmin}
	worker = access.Principal{Username: "worker1", Role: entity.RoleProductionWorker}
	sales  = access.Principal{Username: "sales1", Role: entity.RoleSales}
	fixed  = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	store  *memory.Store
	orders *orders.UseCase
	prod   *production.UseCase
}

// Escenario base: pieza "frame" y modelo "X" que usa un frame, sin unidades ensambladas.
func newFixture(t *testing.T, frames int) fixture {
	t.Helper()
	st := factory.NewState(1)
	st.Parts["frame"] = frames
	st.Bikes["X"] = entity.BikeModel{ID: "X", Manifest: entity.Manifest{"frame": 1}}
	store, err := memory.NewStore([]entity.Station{{Name: "Only"}}, st)
	require.NoError(t, err)

	runner := memory.NewTxRunner(store)
	n := 0
	return fixture{
		store: store,
		orders: orders.NewUseCase(runner, logger.Nop(),
			orders.WithClock(func() time.Time { return fixed }),
			orders.WithIDGenerator(func() string { n++; return fmt.Sprintf("order-%d", n) }),
		),
		prod: production.NewUseCase(runner, logger.Nop()),
	}
}

func (f fixture) unsold(t *testing.T, model string) int {
	t.Helper()
	s, err := f.store.Export(context.Background())
	require.NoError(t, err)
	return s.Bikes[model].Unsold
}

func TestOrders_EscenarioCompleto(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "X", CustomerName: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Equal(t, "Ana", order.CustomerName)

	_, err = f.prod.CompleteAssembly(ctx, worker, "X")
	require.NoError(t, err)
	require.Equal(t, 1, f.unsold(t, "X"))

	done, err := f.orders.Complete(ctx, worker, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", done.Status)
	require.NotNil(t, done.ClosedAt)
	assert.Equal(t, 0, f.unsold(t, "X"))

	_, err = f.orders.Complete(ctx, worker, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 0, f.unsold(t, "X"))
}

func TestComplete_SinStockNoCambiaEstado(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	order, err := f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "X"})
	require.NoError(t, err)

	_, err = f.orders.Complete(ctx, worker, order.ID)
	assert.ErrorIs(t, err, domain.ErrNoStockAvailable)

	got, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", got.Status)
	assert.Nil(t, got.ClosedAt)
}

func TestComplete_PedidoDesconocido(t *testing.T) {
	f := newFixture(t, 1)
	_, err := f.orders.Complete(context.Background(), worker, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, worker, dto.CreateOrderRequest{ModelID: "X"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "Y"})
	assert.ErrorIs(t, err, domain.ErrUnknownModel)

	_, err = f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "X", Color: "Purple"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	all, err := f.orders.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCancel_SoloDesdePending(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	order, err := f.orders.Create(ctx, admin, dto.CreateOrderRequest{ModelID: "X", Size: "Large"})
	require.NoError(t, err)

	_, err = f.orders.Cancel(ctx, worker, order.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	got, err := f.orders.Cancel(ctx, sales, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", got.Status)

	_, err = f.orders.Cancel(ctx, sales, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.orders.Complete(ctx, worker, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "X"})
		require.NoError(t, err)
	}
	_, err := f.orders.Cancel(ctx, sales, "order-2")
	require.NoError(t, err)

	pending, err := f.orders.List(ctx, entity.OrderPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "order-1", pending[0].ID)
	assert.Equal(t, "order-3", pending[1].ID)

	_, err = f.orders.List(ctx, "Shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.orders.Get(ctx, "order-9")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
