package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/access"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// UseCase inventario de piezas: reposición y consultas de stock.
// El consumo no se expone aquí; lo hacen producción y ensamblaje con inventory.Consume.
type UseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, log: log.Component("inventory")}
}

// Replenish suma amount al stock de una pieza existente.
func (uc *UseCase) Replenish(ctx context.Context, p access.Principal, partID string, amount int) (*dto.PartDTO, error) {
	if err := access.Require(p, access.ActionReplenishParts); err != nil {
		uc.log.Warn().Str("user", p.Username).Str("part", partID).Msg("reposición denegada")
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva (%d)", domain.ErrInvalidArgument, amount)
	}

	var out dto.PartDTO
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		part, err := tx.Parts().Get(partID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: pieza %q desconocida", domain.ErrInvalidArgument, partID)
		}
		part.Quantity += amount
		if err := tx.Parts().Upsert(part); err != nil {
			return err
		}
		out = dto.PartDTO{ID: part.ID, Quantity: part.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Str("part", partID).Int("amount", amount).Int("quantity", out.Quantity).Msg("piezas repuestas")
	return &out, nil
}

// ListParts stock de todas las piezas ordenado por identificador.
func (uc *UseCase) ListParts(ctx context.Context) ([]dto.PartDTO, error) {
	var parts []entity.Part
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		parts, err = tx.Parts().List()
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartDTO, len(parts))
	for i, p := range parts {
		out[i] = dto.PartDTO{ID: p.ID, Quantity: p.Quantity}
	}
	return out, nil
}
