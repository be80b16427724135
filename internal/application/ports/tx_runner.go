package ports

import (
	"context"
	"time"

	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
	// View ejecuta fn sin publicar cambios (lecturas).
	View(ctx context.Context, fn func(tx repository.Tx) error) error
}

// Clock fuente de tiempo inyectable.
type Clock func() time.Time

// IDGenerator genera identificadores únicos (uuid en producción).
type IDGenerator func() string
