package dto

// PartDTO stock de una pieza.
type PartDTO struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// ReplenishmentSuggestionDTO pieza con stock bajo y la cantidad sugerida a reponer.
type ReplenishmentSuggestionDTO struct {
	PartID            string `json:"part_id"`
	CurrentStock      int    `json:"current_stock"`
	Threshold         int    `json:"threshold"`
	PendingDemand     int    `json:"pending_demand"`      // piezas que piden los pedidos pendientes
	IdealStock        int    `json:"ideal_stock"`         // 2 * Threshold + PendingDemand
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
