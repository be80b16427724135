// Package factory define el agregado con todo el estado de la sesión: usuarios, piezas,
// línea de producción, inventario de bicicletas, pedidos y registros operativos.
// memory.Store es su único dueño; fuera de él solo circulan copias.
package factory

import "github.com/jhoicas/bikefactory/internal/domain/entity"

// State agregado de la sesión.
type State struct {
	Users       map[string]entity.User
	Parts       map[string]int
	Stations    [][]entity.WorkItem // un slice por estación, FIFO
	Bikes       map[string]entity.BikeModel
	Orders      []entity.Order // en orden de creación
	Maintenance []entity.MaintenanceRecord
	Schedule    []entity.ScheduledTask
	Shifts      []entity.Shift
}

// NewState crea un estado vacío con stageCount estaciones.
func NewState(stageCount int) *State {
	return &State{
		Users:    make(map[string]entity.User),
		Parts:    make(map[string]int),
		Stations: make([][]entity.WorkItem, stageCount),
		Bikes:    make(map[string]entity.BikeModel),
	}
}

// Clone copia profunda; las transacciones mutan el clon y lo publican al confirmar.
func (s *State) Clone() *State {
	out := &State{
		Users:       make(map[string]entity.User, len(s.Users)),
		Parts:       make(map[string]int, len(s.Parts)),
		Stations:    make([][]entity.WorkItem, len(s.Stations)),
		Bikes:       make(map[string]entity.BikeModel, len(s.Bikes)),
		Orders:      make([]entity.Order, len(s.Orders)),
		Maintenance: append([]entity.MaintenanceRecord(nil), s.Maintenance...),
		Schedule:    append([]entity.ScheduledTask(nil), s.Schedule...),
		Shifts:      append([]entity.Shift(nil), s.Shifts...),
	}
	for k, v := range s.Users {
		out.Users[k] = v
	}
	for k, v := range s.Parts {
		out.Parts[k] = v
	}
	for i, items := range s.Stations {
		out.Stations[i] = append([]entity.WorkItem(nil), items...)
	}
	for k, v := range s.Bikes {
		out.Bikes[k] = v.Clone()
	}
	for i, o := range s.Orders {
		out.Orders[i] = o.Clone()
	}
	return out
}

// StationCounts cantidad de ítems por estación.
func (s *State) StationCounts() []int {
	counts := make([]int, len(s.Stations))
	for i, items := range s.Stations {
		counts[i] = len(items)
	}
	return counts
}
