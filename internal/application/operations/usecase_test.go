package operations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/operations"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/catalog"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/infrastructure/memory"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

var (
	worker  = access.Principal{Username: "worker1", Role: entity.RoleProductionWorker}
	manager = access.Principal{Username: "manager1", Role: entity.RoleInventoryManager}
	fixed   = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
)

func newUseCase(t *testing.T) *operations.UseCase {
	t.Helper()
	cat := catalog.Default()
	st, err := cat.Seed(func(p string) (string, error) { return p, nil })
	require.NoError(t, err)
	store, err := memory.NewStore(cat.Stations, st)
	require.NoError(t, err)
	return operations.NewUseCase(memory.NewTxRunner(store), logger.Nop(), func() time.Time { return fixed })
}

func TestAddMaintenance(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	rec, err := uc.AddMaintenance(ctx, manager, "Painting", time.Time{}, " cambio de boquilla ")
	require.NoError(t, err)
	assert.Equal(t, fixed, rec.At)
	assert.Equal(t, "cambio de boquilla", rec.Description)

	_, err = uc.AddMaintenance(ctx, worker, "Painting", fixed, "x")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	_, err = uc.AddMaintenance(ctx, manager, "Sandblasting", fixed, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = uc.AddMaintenance(ctx, manager, "Painting", fixed, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	list, err := uc.ListMaintenance(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddScheduledTask(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.AddScheduledTask(ctx, worker, fixed, "lote Sport", "20 unidades")
	require.NoError(t, err)
	_, err = uc.AddScheduledTask(ctx, manager, fixed, "lote Tour", "")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	_, err = uc.AddScheduledTask(ctx, worker, time.Time{}, "sin fecha", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	tasks, err := uc.ListSchedule(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "lote Sport", tasks[0].Task)
}

func TestAddShift(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	shift := dto.ShiftDTO{Employee: "Luis", Start: fixed, End: fixed.Add(8 * time.Hour), Role: "ProductionWorker"}

	_, err := uc.AddShift(ctx, manager, shift)
	require.NoError(t, err)

	_, err = uc.AddShift(ctx, worker, shift)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	bad := shift
	bad.End = bad.Start
	_, err = uc.AddShift(ctx, manager, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	bad = shift
	bad.Role = "Driver"
	_, err = uc.AddShift(ctx, manager, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	shifts, err := uc.ListShifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Luis", shifts[0].Employee)
}
