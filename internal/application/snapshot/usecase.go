// Package snapshot pasarela de persistencia: exporta e importa el estado completo de la
// sesión como documento y lo guarda en el backend configurado.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// StateHolder dueño del estado de la sesión (memory.Store).
type StateHolder interface {
	Stations() []entity.Station
	Export(ctx context.Context) (*factory.State, error)
	Replace(ctx context.Context, next *factory.State) error
}

// Codec formato del documento.
type Codec interface {
	Encode(s *factory.State, savedAt time.Time) ([]byte, error)
	Decode(data []byte, stageCount int) (*factory.State, error)
}

// Store backend donde se guarda el último snapshot.
type Store interface {
	Save(ctx context.Context, data []byte) error
	// Latest devuelve nil, nil si no hay nada guardado.
	Latest(ctx context.Context) ([]byte, error)
}

// UseCase casos de uso de persistencia.
type UseCase struct {
	state StateHolder
	codec Codec
	store Store
	log   *logger.Logger
	now   ports.Clock
}

// NewUseCase construye el caso de uso. store puede ser nil si solo se usan Save/Load.
func NewUseCase(state StateHolder, codec Codec, store Store, log *logger.Logger, now ports.Clock) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{state: state, codec: codec, store: store, log: log.Component("snapshot"), now: now}
}

// Save lectura pura del estado actual serializada.
func (uc *UseCase) Save(ctx context.Context) ([]byte, error) {
	s, err := uc.state.Export(ctx)
	if err != nil {
		return nil, err
	}
	return uc.codec.Encode(s, uc.now())
}

// Load valida el documento y reemplaza el estado completo. Si el documento es inválido
// devuelve ErrCorruptSnapshot y el estado actual queda intacto.
func (uc *UseCase) Load(ctx context.Context, data []byte) error {
	next, err := uc.codec.Decode(data, len(uc.state.Stations()))
	if err != nil {
		uc.log.Warn().Err(err).Msg("snapshot rechazado")
		return err
	}
	if err := uc.state.Replace(ctx, next); err != nil {
		return err
	}
	uc.log.Info().Int("users", len(next.Users)).Int("orders", len(next.Orders)).Msg("snapshot cargado")
	return nil
}

// Persist guarda el estado actual en el backend.
func (uc *UseCase) Persist(ctx context.Context) error {
	if uc.store == nil {
		return fmt.Errorf("snapshot: sin backend configurado")
	}
	data, err := uc.Save(ctx)
	if err != nil {
		return err
	}
	if err := uc.store.Save(ctx, data); err != nil {
		return err
	}
	uc.log.Debug().Int("bytes", len(data)).Msg("snapshot guardado")
	return nil
}

// Restore carga el último snapshot del backend. Devuelve false si no había ninguno
// (el estado actual, normalmente el sembrado, queda como está).
func (uc *UseCase) Restore(ctx context.Context) (bool, error) {
	if uc.store == nil {
		return false, fmt.Errorf("snapshot: sin backend configurado")
	}
	data, err := uc.store.Latest(ctx)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := uc.Load(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}
