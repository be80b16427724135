package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// LowStock devuelve las piezas con stock <= threshold y la cantidad sugerida de reposición.
// La demanda pendiente suma, por cada pedido Pending, el manifiesto de su modelo menos las
// unidades ya ensambladas sin vender.
func (uc *UseCase) LowStock(ctx context.Context, threshold int) ([]dto.ReplenishmentSuggestionDTO, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: umbral negativo (%d)", domain.ErrInvalidArgument, threshold)
	}

	var (
		parts  []entity.Part
		demand map[string]int
	)
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		var err error
		if parts, err = tx.Parts().List(); err != nil {
			return err
		}
		demand, err = pendingDemand(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range parts {
		if p.Quantity > threshold {
			continue
		}
		ideal := 2*threshold + demand[p.ID]
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			PartID:            p.ID,
			CurrentStock:      p.Quantity,
			Threshold:         threshold,
			PendingDemand:     demand[p.ID],
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	// Mayor cantidad sugerida primero; a igualdad, menor stock; luego por pieza.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.PartID < b.PartID
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func pendingDemand(tx repository.Tx) (map[string]int, error) {
	orders, err := tx.Orders().List()
	if err != nil {
		return nil, err
	}
	pending := make(map[string]int)
	for _, o := range orders {
		if o.Status == entity.OrderPending {
			pending[o.ModelID]++
		}
	}
	demand := make(map[string]int)
	for modelID, n := range pending {
		model, err := tx.Bikes().Get(modelID)
		if err != nil {
			return nil, err
		}
		if model == nil {
			continue
		}
		missing := n - model.Unsold
		if missing <= 0 {
			continue
		}
		for partID, qty := range model.Manifest {
			demand[partID] += qty * missing
		}
	}
	return demand, nil
}
