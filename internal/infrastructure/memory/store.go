// Package memory implementa los puertos de persistencia sobre el agregado factory.State
// en memoria. Todas las operaciones se serializan con un único mutex.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
)

// Store dueño del estado de la sesión.
type Store struct {
	mu       sync.Mutex
	stations []entity.Station
	state    *factory.State
}

// NewStore construye el store con la línea de producción fija y el estado inicial.
func NewStore(stations []entity.Station, initial *factory.State) (*Store, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("%w: se necesita al menos una estación", domain.ErrInvalidArgument)
	}
	if initial == nil {
		initial = factory.NewState(len(stations))
	}
	if len(initial.Stations) != len(stations) {
		return nil, fmt.Errorf("%w: el estado tiene %d estaciones, la línea %d",
			domain.ErrInvalidArgument, len(initial.Stations), len(stations))
	}
	st := make([]entity.Station, len(stations))
	for i, s := range stations {
		st[i] = entity.Station{Name: s.Name, Manifest: s.Manifest.Clone()}
	}
	return &Store{stations: st, state: initial.Clone()}, nil
}

// Stations copia de la configuración de estaciones.
func (s *Store) Stations() []entity.Station {
	out := make([]entity.Station, len(s.stations))
	for i, st := range s.stations {
		out[i] = entity.Station{Name: st.Name, Manifest: st.Manifest.Clone()}
	}
	return out
}

// Export devuelve una copia del estado actual (lectura pura).
func (s *Store) Export(ctx context.Context) (*factory.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), nil
}

// Replace sustituye el estado completo de forma atómica.
func (s *Store) Replace(ctx context.Context, next *factory.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if next == nil || len(next.Stations) != len(s.stations) {
		return fmt.Errorf("%w: número de estaciones no coincide con la línea configurada", domain.ErrCorruptSnapshot)
	}
	clone := next.Clone()
	s.mu.Lock()
	s.state = clone
	s.mu.Unlock()
	return nil
}
