package repository

import "github.com/jhoicas/bikefactory/internal/domain/entity"

// PartRepository puerto de persistencia del stock de piezas (DIP).
type PartRepository interface {
	// Get devuelve nil, nil si la pieza no existe.
	Get(id string) (*entity.Part, error)
	List() ([]entity.Part, error)
	Upsert(part *entity.Part) error
}

// BikeRepository puerto del catálogo de modelos y su inventario sin vender.
type BikeRepository interface {
	Get(id string) (*entity.BikeModel, error)
	List() ([]entity.BikeModel, error)
	Upsert(model *entity.BikeModel) error
}

// StationRepository puerto de la línea de producción. Las estaciones son fijas.
type StationRepository interface {
	Stations() []entity.Station
	Items(stage int) ([]entity.WorkItem, error)
	Enqueue(stage int, item entity.WorkItem) error
	// Dequeue saca el ítem más antiguo; nil, nil si la estación está vacía.
	Dequeue(stage int) (*entity.WorkItem, error)
}

// OrderRepository puerto del libro de pedidos.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	List() ([]entity.Order, error)
}

// UserRepository puerto de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	Delete(username string) error
	List() ([]entity.User, error)
}

// OperationsRepository mantenimiento, calendario y turnos.
type OperationsRepository interface {
	AddMaintenance(record entity.MaintenanceRecord) error
	ListMaintenance() ([]entity.MaintenanceRecord, error)
	AddScheduledTask(task entity.ScheduledTask) error
	ListSchedule() ([]entity.ScheduledTask, error)
	AddShift(shift entity.Shift) error
	ListShifts() ([]entity.Shift, error)
}

// Tx agrupa los repositorios atados a una misma transacción.
type Tx interface {
	Parts() PartRepository
	Bikes() BikeRepository
	Stations() StationRepository
	Orders() OrderRepository
	Users() UserRepository
	Operations() OperationsRepository
}
