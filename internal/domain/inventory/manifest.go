package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

// Shortage falta de una pieza al intentar consumir un manifiesto.
type Shortage struct {
	PartID    string
	Needed    int
	Available int
}

// Shortages servicio de dominio: compara el manifiesto contra el stock disponible y devuelve
// las faltas ordenadas por pieza. available devuelve (cantidad, existe) para una pieza;
// una pieza inexistente cuenta con stock cero.
func Shortages(manifest entity.Manifest, available func(partID string) (int, bool)) []Shortage {
	var out []Shortage
	for partID, needed := range manifest {
		if needed <= 0 {
			continue
		}
		have, _ := available(partID)
		if have < needed {
			out = append(out, Shortage{PartID: partID, Needed: needed, Available: have})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartID < out[j].PartID })
	return out
}

// Consume descuenta el manifiesto del stock. Primero verifica todas las líneas y solo
// si no hay faltas escribe; ante una falta devuelve ErrInsufficientStock sin tocar nada.
func Consume(parts repository.PartRepository, manifest entity.Manifest) error {
	stock := make(map[string]int, len(manifest))
	for partID := range manifest {
		p, err := parts.Get(partID)
		if err != nil {
			return err
		}
		if p != nil {
			stock[partID] = p.Quantity
		}
	}
	short := Shortages(manifest, func(id string) (int, bool) {
		q, ok := stock[id]
		return q, ok
	})
	if len(short) > 0 {
		s := short[0]
		return fmt.Errorf("%w: %s necesita %d, hay %d", domain.ErrInsufficientStock, s.PartID, s.Needed, s.Available)
	}
	for partID, qty := range manifest {
		if qty <= 0 {
			continue
		}
		if err := parts.Upsert(&entity.Part{ID: partID, Quantity: stock[partID] - qty}); err != nil {
			return err
		}
	}
	return nil
}
