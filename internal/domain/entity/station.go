package entity

import "time"

// Station etapa fija de la línea de producción.
// Manifest se consume al avanzar un ítem fuera de la estación (puede ser vacío).
type Station struct {
	Name     string
	Manifest Manifest
}

// WorkItem ítem en proceso dentro de la línea; ocupa exactamente una estación.
type WorkItem struct {
	ID        string
	ModelID   string
	StartedAt time.Time
}
