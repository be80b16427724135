package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/application/inventory"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/catalog"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/internal/infrastructure/memory"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

var (
	manager = access.Principal{Username: "manager1", Role: entity.RoleInventoryManager}
	sales   = access.Principal{Username: "sales1", Role: entity.RoleSales}
)

func newRunner(t *testing.T) *memory.TxRunner {
	t.Helper()
	cat := catalog.Default()
	st, err := cat.Seed(func(p string) (string, error) { return "h:" + p, nil })
	require.NoError(t, err)
	store, err := memory.NewStore(cat.Stations, st)
	require.NoError(t, err)
	return memory.NewTxRunner(store)
}

func TestReplenish_SumaCantidad(t *testing.T) {
	uc := inventory.NewUseCase(newRunner(t), logger.Nop())

	got, err := uc.Replenish(context.Background(), manager, "Wheels", 5)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
}

func TestReplenish_Validaciones(t *testing.T) {
	uc := inventory.NewUseCase(newRunner(t), logger.Nop())
	ctx := context.Background()

	_, err := uc.Replenish(ctx, sales, "Wheels", 5)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = uc.Replenish(ctx, manager, "Wheels", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = uc.Replenish(ctx, manager, "Carbon", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	parts, err := uc.ListParts(ctx)
	require.NoError(t, err)
	for _, p := range parts {
		if p.ID == "Wheels" {
			assert.Equal(t, 20, p.Quantity, "ninguna validación fallida debe mutar el stock")
		}
	}
}

func TestListParts_Ordenadas(t *testing.T) {
	uc := inventory.NewUseCase(newRunner(t), logger.Nop())
	parts, err := uc.ListParts(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 8)
	assert.Equal(t, "Brakes", parts[0].ID)
	assert.Equal(t, "Wheels", parts[7].ID)
}

func TestLowStock_SugerenciasConDemandaPendiente(t *testing.T) {
	runner := newRunner(t)
	ctx := context.Background()
	require.NoError(t, runner.Run(ctx, func(tx repository.Tx) error {
		require.NoError(t, tx.Parts().Upsert(&entity.Part{ID: "Motors", Quantity: 1}))
		require.NoError(t, tx.Parts().Upsert(&entity.Part{ID: "Lights", Quantity: 3}))
		// dos pedidos Electric pendientes sin unidades ensambladas
		for _, id := range []string{"o1", "o2"} {
			require.NoError(t, tx.Orders().Create(&entity.Order{
				ID: id, ModelID: "Electric", Status: entity.OrderPending, CreatedAt: time.Now(),
			}))
		}
		return nil
	}))

	uc := inventory.NewUseCase(runner, logger.Nop())
	got, err := uc.LowStock(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Lights: ideal 6+2=8, sugerido 5. Motors: ideal 6+2=8, sugerido 7.
	assert.Equal(t, "Motors", got[0].PartID)
	assert.Equal(t, 2, got[0].PendingDemand)
	assert.Equal(t, 7, got[0].SuggestedOrderQty)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, "Lights", got[1].PartID)
	assert.Equal(t, 5, got[1].SuggestedOrderQty)
	assert.Equal(t, 2, got[1].Priority)
}

func TestLowStock_UmbralNegativo(t *testing.T) {
	uc := inventory.NewUseCase(newRunner(t), logger.Nop())
	_, err := uc.LowStock(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
