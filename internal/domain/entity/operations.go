package entity

import "time"

// MaintenanceRecord registro de mantenimiento de una estación.
type MaintenanceRecord struct {
	Station     string
	At          time.Time
	Description string
}

// ScheduledTask tarea del calendario de producción.
type ScheduledTask struct {
	At    time.Time
	Task  string
	Notes string
}

// Shift turno de un empleado.
type Shift struct {
	Employee string
	Start    time.Time
	End      time.Time
	Role     Role
}
