// Package analytics contiene los casos de uso que alimentan el dashboard de la fábrica.
package analytics

import (
	"context"
	"sort"

	"github.com/jhoicas/bikefactory/internal/application/dto"
	"github.com/jhoicas/bikefactory/internal/application/ports"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// DashboardUseCase resumen de solo lectura sobre el estado de la sesión.
type DashboardUseCase struct {
	txRunner          ports.TxRunner
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(txRunner ports.TxRunner, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{txRunner: txRunner, lowStockThreshold: lowStockThreshold}
}

// Summary conteos por estación, pedidos por estado e inventario sin vender por modelo.
// Todo se lee en una misma vista para que los números sean coherentes entre sí.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	out := &dto.DashboardSummaryDTO{UnsoldByModel: make(map[string]int)}
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		// ── Línea ──────────────────────────────────────────────────────────────
		for i, st := range tx.Stations().Stations() {
			items, err := tx.Stations().Items(i)
			if err != nil {
				return err
			}
			out.StationCounts = append(out.StationCounts, dto.StationCountDTO{Name: st.Name, Count: len(items)})
			out.InProgress += len(items)
		}

		// ── Pedidos ────────────────────────────────────────────────────────────
		orders, err := tx.Orders().List()
		if err != nil {
			return err
		}
		out.TotalOrders = len(orders)
		for _, o := range orders {
			switch o.Status {
			case entity.OrderPending:
				out.PendingOrders++
			case entity.OrderCompleted:
				out.CompletedOrders++
			case entity.OrderCancelled:
				out.CancelledOrders++
			}
		}

		// ── Inventario ─────────────────────────────────────────────────────────
		models, err := tx.Bikes().List()
		if err != nil {
			return err
		}
		for _, m := range models {
			out.UnsoldByModel[m.ID] = m.Unsold
			out.TotalUnsold += m.Unsold
		}
		parts, err := tx.Parts().List()
		if err != nil {
			return err
		}
		for _, p := range parts {
			if p.Quantity <= uc.lowStockThreshold {
				out.LowStockParts++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OrdersByModel pedidos por modelo y estado. Incluye los modelos sin pedidos.
func (uc *DashboardUseCase) OrdersByModel(ctx context.Context) ([]dto.ModelOrdersDTO, error) {
	byModel := make(map[string]*dto.ModelOrdersDTO)
	err := uc.txRunner.View(ctx, func(tx repository.Tx) error {
		models, err := tx.Bikes().List()
		if err != nil {
			return err
		}
		for _, m := range models {
			byModel[m.ID] = &dto.ModelOrdersDTO{ModelID: m.ID}
		}
		orders, err := tx.Orders().List()
		if err != nil {
			return err
		}
		for _, o := range orders {
			row, ok := byModel[o.ModelID]
			if !ok {
				row = &dto.ModelOrdersDTO{ModelID: o.ModelID}
				byModel[o.ModelID] = row
			}
			row.Total++
			switch o.Status {
			case entity.OrderPending:
				row.Pending++
			case entity.OrderCompleted:
				row.Completed++
			case entity.OrderCancelled:
				row.Cancelled++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ModelOrdersDTO, 0, len(byModel))
	for _, row := range byModel {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out, nil
}
