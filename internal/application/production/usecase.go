// Package production casos de uso de la línea de producción y del ensamblaje de bicicletas.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/inventory"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// UseCase mueve ítems por las estaciones y ensambla bicicletas terminadas.
type UseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
	now      ports.Clock
	newID    ports.IDGenerator
}

// Option ajusta dependencias opcionales (reloj, generador de IDs).
type Option func(*UseCase)

// WithClock fija el reloj.
func WithClock(c ports.Clock) Option { return func(uc *UseCase) { uc.now = c } }

// WithIDGenerator fija el generador de IDs de ítems.
func WithIDGenerator(g ports.IDGenerator) Option { return func(uc *UseCase) { uc.newID = g } }

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		txRunner: txRunner,
		log:      log.Component("production"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// StartItem coloca un ítem nuevo del modelo en la primera estación.
func (uc *UseCase) StartItem(ctx context.Context, p access.Principal, modelID string) (*dto.WorkItemDTO, error) {
	if err := access.Require(p, access.ActionAdvanceStation); err != nil {
		uc.log.Warn().Str("user", p.Username).Msg("inicio de ítem denegado")
		return nil, err
	}
	item := entity.WorkItem{ID: uc.newID(), ModelID: modelID, StartedAt: uc.now()}
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		model, err := tx.Bikes().Get(modelID)
		if err != nil {
			return err
		}
		if model == nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownModel, modelID)
		}
		return tx.Stations().Enqueue(0, item)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("item", item.ID).Str("model", modelID).Msg("ítem iniciado")
	out := toWorkItemDTO(item)
	return &out, nil
}

// Advance saca el ítem más antiguo de la estación stage y lo pasa a la siguiente. Solo la
// salida de la estación de entrada (0) consume piezas. Desde la última estación completa el
// ensamblaje del modelo del ítem en la misma transacción.
func (uc *UseCase) Advance(ctx context.Context, p access.Principal, stage int) (*dto.AdvanceResult, error) {
	if err := access.Require(p, access.ActionAdvanceStation); err != nil {
		uc.log.Warn().Str("user", p.Username).Int("stage", stage).Msg("avance denegado")
		return nil, err
	}

	var res dto.AdvanceResult
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		stations := tx.Stations().Stations()
		if stage < 0 || stage >= len(stations) {
			return fmt.Errorf("%w: estación %d fuera de rango [0, %d]", domain.ErrEmptyStation, stage, len(stations)-1)
		}
		item, err := tx.Stations().Dequeue(stage)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %s", domain.ErrEmptyStation, stations[stage].Name)
		}
		if stage == 0 {
			if err := inventory.Consume(tx.Parts(), stations[0].Manifest); err != nil {
				return fmt.Errorf("estación %s: %w", stations[0].Name, err)
			}
		}

		res = dto.AdvanceResult{Item: toWorkItemDTO(*item), FromStage: stage, ToStage: stage + 1}
		if stage == len(stations)-1 {
			res.ToStage = -1
			res.Assembled = true
			_, err := assemble(tx, item.ModelID)
			return err
		}
		return tx.Stations().Enqueue(stage+1, *item)
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info().Str("user", p.Username).Str("item", res.Item.ID).Int("from", stage)
	if res.Assembled {
		ev.Str("model", res.Item.ModelID).Msg("ítem terminado y bicicleta ensamblada")
	} else {
		ev.Int("to", res.ToStage).Msg("ítem avanzado")
	}
	return &res, nil
}

// CompleteAssembly consume el manifiesto completo del modelo y suma una unidad sin vender.
func (uc *UseCase) CompleteAssembly(ctx context.Context, p access.Principal, modelID string) (*dto.BikeDTO, error) {
	if err := access.Require(p, access.ActionAssembleBike); err != nil {
		uc.log.Warn().Str("user", p.Username).Str("model", modelID).Msg("ensamblaje denegado")
		return nil, err
	}
	var out dto.BikeDTO
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		model, err := assemble(tx, modelID)
		if err != nil {
			return err
		}
		out = toBikeDTO(*model)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("model", modelID).Int("unsold", out.Unsold).Msg("bicicleta ensamblada")
	return &out, nil
}

// assemble único camino que incrementa Unsold.
func assemble(tx repository.Tx, modelID string) (*entity.BikeModel, error) {
	model, err := tx.Bikes().Get(modelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownModel, modelID)
	}
	if err := inventory.Consume(tx.Parts(), model.Manifest); err != nil {
		return nil, fmt.Errorf("modelo %s: %w", modelID, err)
	}
	model.Unsold++
	if err := tx.Bikes().Upsert(model); err != nil {
		return nil, err
	}
	return model, nil
}

// Stations estado de cada estación con sus ítems en orden de llegada.
func (uc *UseCase) Stations(ctx context.Context) ([]dto.StationDTO, error) {
	var out []dto.StationDTO
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		stations := tx.Stations().Stations()
		out = make([]dto.StationDTO, len(stations))
		for i, st := range stations {
			items, err := tx.Stations().Items(i)
			if err != nil {
				return err
			}
			view := dto.StationDTO{Index: i, Name: st.Name, Count: len(items), Manifest: st.Manifest, Items: make([]dto.WorkItemDTO, len(items))}
			for j, it := range items {
				view.Items[j] = toWorkItemDTO(it)
			}
			out[i] = view
		}
		return nil
	})
	return out, err
}

// Bikes inventario de bicicletas por modelo.
func (uc *UseCase) Bikes(ctx context.Context) ([]dto.BikeDTO, error) {
	var out []dto.BikeDTO
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		models, err := tx.Bikes().List()
		if err != nil {
			return err
		}
		out = make([]dto.BikeDTO, len(models))
		for i, m := range models {
			out[i] = toBikeDTO(m)
		}
		return nil
	})
	return out, err
}

func toWorkItemDTO(it entity.WorkItem) dto.WorkItemDTO {
	return dto.WorkItemDTO{ID: it.ID, ModelID: it.ModelID, StartedAt: it.StartedAt}
}

func toBikeDTO(m entity.BikeModel) dto.BikeDTO {
	return dto.BikeDTO{ID: m.ID, Unsold: m.Unsold, Manifest: m.Manifest}
}
