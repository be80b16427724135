package dto

import "time"

// MaintenanceDTO registro de mantenimiento.
type MaintenanceDTO struct {
	Station     string    `json:"station"`
	At          time.Time `json:"at"`
	Description string    `json:"description"`
}

// ScheduledTaskDTO tarea del calendario.
type ScheduledTaskDTO struct {
	At    time.Time `json:"at"`
	Task  string    `json:"task"`
	Notes string    `json:"notes,omitempty"`
}

// ShiftDTO turno de un empleado.
type ShiftDTO struct {
	Employee string    `json:"employee"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Role     string    `json:"role"`
}
