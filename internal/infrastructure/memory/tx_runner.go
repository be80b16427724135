package memory

import (
	"context"

	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run bloquea el store, ejecuta fn sobre un clon del estado y lo publica solo si fn
// devuelve nil. Si fn falla el clon se descarta (rollback) y el estado queda intacto.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.state.Clone()
	if err := fn(newTx(work, r.store.stations)); err != nil {
		return err
	}
	r.store.state = work
	return nil
}

// View ejecuta fn en modo lectura; cualquier cambio que haga fn se descarta.
func (r *TxRunner) View(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(newTx(r.store.state.Clone(), r.store.stations))
}
