package dto

import "time"

// WorkItemDTO ítem en proceso.
type WorkItemDTO struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"model_id"`
	StartedAt time.Time `json:"started_at"`
}

// StationDTO estado de una estación de la línea.
type StationDTO struct {
	Index    int            `json:"index"`
	Name     string         `json:"name"`
	Count    int            `json:"count"`
	Manifest map[string]int `json:"manifest,omitempty"`
	Items    []WorkItemDTO  `json:"items"`
}

// AdvanceResult resultado de avanzar una estación. ToStage es -1 cuando el ítem
// salió de la última estación y se ensambló la bicicleta.
type AdvanceResult struct {
	Item      WorkItemDTO `json:"item"`
	FromStage int         `json:"from_stage"`
	ToStage   int         `json:"to_stage"`
	Assembled bool        `json:"assembled"`
}

// BikeDTO modelo con su inventario sin vender.
type BikeDTO struct {
	ID       string         `json:"id"`
	Unsold   int            `json:"unsold_count"`
	Manifest map[string]int `json:"manifest"`
}
