package orders_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikefactory/internal/application/dto"
)

// Secuencias aleatorias sobre el modelo X: el stock nunca es negativo y Unsold es
// ensamblajes menos cierres en todo momento.
func TestPropiedades_SecuenciasAleatorias(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		f := newFixture(t, 8)
		ctx := context.Background()
		rng := rand.New(rand.NewSource(seed))

		assembled, completed := 0, 0
		var ids []string
		for step := 0; step < 60; step++ {
			switch rng.Intn(4) {
			case 0:
				if _, err := f.prod.CompleteAssembly(ctx, worker, "X"); err == nil {
					assembled++
				}
			case 1:
				o, err := f.orders.Create(ctx, sales, dto.CreateOrderRequest{ModelID: "X"})
				require.NoError(t, err)
				ids = append(ids, o.ID)
			case 2:
				if len(ids) > 0 {
					if _, err := f.orders.Complete(ctx, worker, ids[rng.Intn(len(ids))]); err == nil {
						completed++
					}
				}
			case 3:
				if len(ids) > 0 {
					_, _ = f.orders.Cancel(ctx, sales, ids[rng.Intn(len(ids))])
				}
			}

			s, err := f.store.Export(ctx)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Parts["frame"], 0, "seed %d step %d", seed, step)
			assert.Equal(t, assembled-completed, s.Bikes["X"].Unsold, "seed %d step %d", seed, step)
		}
	}
}
