package memory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
	"github.com/jhoicas/bikefactory/internal/domain/repository"
)

var (
	_ repository.Tx                   = (*tx)(nil)
	_ repository.PartRepository       = (*PartRepo)(nil)
	_ repository.BikeRepository       = (*BikeRepo)(nil)
	_ repository.StationRepository    = (*StationRepo)(nil)
	_ repository.OrderRepository      = (*OrderRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.OperationsRepository = (*OperationsRepo)(nil)
)

// tx repositorios atados a un mismo estado de trabajo.
type tx struct {
	state    *factory.State
	stations []entity.Station
}

func newTx(state *factory.State, stations []entity.Station) *tx {
	return &tx{state: state, stations: stations}
}

func (t *tx) Parts() repository.PartRepository   { return &PartRepo{s: t.state} }
func (t *tx) Bikes() repository.BikeRepository   { return &BikeRepo{s: t.state} }
func (t *tx) Orders() repository.OrderRepository { return &OrderRepo{s: t.state} }
func (t *tx) Users() repository.UserRepository   { return &UserRepo{s: t.state} }
func (t *tx) Operations() repository.OperationsRepository {
	return &OperationsRepo{s: t.state}
}
func (t *tx) Stations() repository.StationRepository {
	return &StationRepo{s: t.state, stations: t.stations}
}

// ──────────────────────────────────────────────────────────────────────────────
// Piezas
// ──────────────────────────────────────────────────────────────────────────────

// PartRepo stock de piezas en memoria.
type PartRepo struct {
	s *factory.State
}

// Get obtiene la pieza; nil si no existe.
func (r *PartRepo) Get(id string) (*entity.Part, error) {
	qty, ok := r.s.Parts[id]
	if !ok {
		return nil, nil
	}
	return &entity.Part{ID: id, Quantity: qty}, nil
}

// List piezas ordenadas por identificador.
func (r *PartRepo) List() ([]entity.Part, error) {
	out := make([]entity.Part, 0, len(r.s.Parts))
	for id, qty := range r.s.Parts {
		out = append(out, entity.Part{ID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert guarda la cantidad; nunca acepta stock negativo.
func (r *PartRepo) Upsert(part *entity.Part) error {
	if part.Quantity < 0 {
		return fmt.Errorf("%w: pieza %s quedaría en %d", domain.ErrInsufficientStock, part.ID, part.Quantity)
	}
	r.s.Parts[part.ID] = part.Quantity
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Bicicletas
// ──────────────────────────────────────────────────────────────────────────────

// BikeRepo modelos y unidades sin vender en memoria.
type BikeRepo struct {
	s *factory.State
}

// Get obtiene el modelo; nil si no existe.
func (r *BikeRepo) Get(id string) (*entity.BikeModel, error) {
	m, ok := r.s.Bikes[id]
	if !ok {
		return nil, nil
	}
	c := m.Clone()
	return &c, nil
}

// List modelos ordenados por identificador.
func (r *BikeRepo) List() ([]entity.BikeModel, error) {
	out := make([]entity.BikeModel, 0, len(r.s.Bikes))
	for _, m := range r.s.Bikes {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert guarda el modelo.
func (r *BikeRepo) Upsert(model *entity.BikeModel) error {
	if model.Unsold < 0 {
		return fmt.Errorf("%w: modelo %s quedaría en %d unidades", domain.ErrNoStockAvailable, model.ID, model.Unsold)
	}
	r.s.Bikes[model.ID] = model.Clone()
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Estaciones
// ──────────────────────────────────────────────────────────────────────────────

// StationRepo línea de producción en memoria; cada estación es una cola FIFO.
type StationRepo struct {
	s        *factory.State
	stations []entity.Station
}

// Stations configuración fija (copia).
func (r *StationRepo) Stations() []entity.Station {
	out := make([]entity.Station, len(r.stations))
	for i, st := range r.stations {
		out[i] = entity.Station{Name: st.Name, Manifest: st.Manifest.Clone()}
	}
	return out
}

func (r *StationRepo) checkStage(stage int) error {
	if stage < 0 || stage >= len(r.s.Stations) {
		return fmt.Errorf("%w: estación %d fuera de rango [0, %d]", domain.ErrInvalidArgument, stage, len(r.s.Stations)-1)
	}
	return nil
}

// Items ítems de la estación en orden de llegada.
func (r *StationRepo) Items(stage int) ([]entity.WorkItem, error) {
	if err := r.checkStage(stage); err != nil {
		return nil, err
	}
	return append([]entity.WorkItem(nil), r.s.Stations[stage]...), nil
}

// Enqueue añade el ítem al final de la estación.
func (r *StationRepo) Enqueue(stage int, item entity.WorkItem) error {
	if err := r.checkStage(stage); err != nil {
		return err
	}
	r.s.Stations[stage] = append(r.s.Stations[stage], item)
	return nil
}

// Dequeue saca el ítem más antiguo; nil si la estación está vacía.
func (r *StationRepo) Dequeue(stage int) (*entity.WorkItem, error) {
	if err := r.checkStage(stage); err != nil {
		return nil, err
	}
	items := r.s.Stations[stage]
	if len(items) == 0 {
		return nil, nil
	}
	item := items[0]
	r.s.Stations[stage] = append([]entity.WorkItem(nil), items[1:]...)
	return &item, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

// OrderRepo libro de pedidos en memoria (orden de creación).
type OrderRepo struct {
	s *factory.State
}

// Create añade el pedido; el ID debe ser único.
func (r *OrderRepo) Create(order *entity.Order) error {
	if r.indexOf(order.ID) >= 0 {
		return fmt.Errorf("%w: pedido %s duplicado", domain.ErrInvalidArgument, order.ID)
	}
	r.s.Orders = append(r.s.Orders, order.Clone())
	return nil
}

// GetByID obtiene el pedido; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	o := r.s.Orders[i].Clone()
	return &o, nil
}

// Update reemplaza el pedido existente.
func (r *OrderRepo) Update(order *entity.Order) error {
	i := r.indexOf(order.ID)
	if i < 0 {
		return fmt.Errorf("%w: pedido %s no existe", domain.ErrInvalidState, order.ID)
	}
	r.s.Orders[i] = order.Clone()
	return nil
}

// List pedidos en orden de creación.
func (r *OrderRepo) List() ([]entity.Order, error) {
	out := make([]entity.Order, len(r.s.Orders))
	for i, o := range r.s.Orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (r *OrderRepo) indexOf(id string) int {
	for i, o := range r.s.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria indexados por username.
type UserRepo struct {
	s *factory.State
}

// Create persiste un nuevo usuario; el username debe ser único.
func (r *UserRepo) Create(user *entity.User) error {
	if _, ok := r.s.Users[user.Username]; ok {
		return fmt.Errorf("%w: el usuario %s ya existe", domain.ErrInvalidArgument, user.Username)
	}
	r.s.Users[user.Username] = *user
	return nil
}

// GetByUsername obtiene el usuario; nil si no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	u, ok := r.s.Users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(username string) error {
	if _, ok := r.s.Users[username]; !ok {
		return fmt.Errorf("%w: el usuario %s no existe", domain.ErrInvalidArgument, username)
	}
	delete(r.s.Users, username)
	return nil
}

// List usuarios ordenados por username.
func (r *UserRepo) List() ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.s.Users))
	for _, u := range r.s.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones
// ──────────────────────────────────────────────────────────────────────────────

// OperationsRepo mantenimiento, calendario y turnos en memoria.
type OperationsRepo struct {
	s *factory.State
}

func (r *OperationsRepo) AddMaintenance(record entity.MaintenanceRecord) error {
	r.s.Maintenance = append(r.s.Maintenance, record)
	return nil
}

func (r *OperationsRepo) ListMaintenance() ([]entity.MaintenanceRecord, error) {
	return append([]entity.MaintenanceRecord(nil), r.s.Maintenance...), nil
}

func (r *OperationsRepo) AddScheduledTask(task entity.ScheduledTask) error {
	r.s.Schedule = append(r.s.Schedule, task)
	return nil
}

func (r *OperationsRepo) ListSchedule() ([]entity.ScheduledTask, error) {
	return append([]entity.ScheduledTask(nil), r.s.Schedule...), nil
}

func (r *OperationsRepo) AddShift(shift entity.Shift) error {
	r.s.Shifts = append(r.s.Shifts, shift)
	return nil
}

func (r *OperationsRepo) ListShifts() ([]entity.Shift, error) {
	return append([]entity.Shift(nil), r.s.Shifts...), nil
}
