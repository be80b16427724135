package dto

// DashboardSummaryDTO resumen de la fábrica: línea, pedidos e inventario.
type DashboardSummaryDTO struct {
	// Línea de producción
	StationCounts []StationCountDTO `json:"station_counts"`
	InProgress    int               `json:"in_progress"` // ítems en todas las estaciones

	// Pedidos
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	CompletedOrders int `json:"completed_orders"`
	CancelledOrders int `json:"cancelled_orders"`

	// Inventario
	UnsoldByModel map[string]int `json:"unsold_by_model"`
	TotalUnsold   int            `json:"total_unsold"`
	LowStockParts int            `json:"low_stock_parts"`
}

// StationCountDTO cantidad de ítems en una estación.
type StationCountDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ModelOrdersDTO pedidos por modelo (datos del gráfico de barras).
type ModelOrdersDTO struct {
	ModelID   string `json:"model_id"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
}
