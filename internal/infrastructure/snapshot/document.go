// Package snapshot serializa el estado de la sesión a un documento JSON y lo guarda en
// disco (archivo) o en SQLite.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
)

// DocumentVersion versión del formato que escribe Encode.
const DocumentVersion = 1

// Claves obligatorias del documento.
var requiredKeys = []string{"users", "parts", "stations", "bikes", "orders"}

type document struct {
	Version     int                `json:"version,omitempty"`
	SavedAt     *time.Time         `json:"saved_at,omitempty"`
	Users       []userDoc          `json:"users"`
	Parts       map[string]int     `json:"parts"`
	Stations    [][]workItemDoc    `json:"stations"`
	Bikes       map[string]bikeDoc `json:"bikes"`
	Orders      []orderDoc         `json:"orders"`
	Maintenance []maintenanceDoc   `json:"maintenance,omitempty"`
	Schedule    []scheduledTaskDoc `json:"schedule,omitempty"`
	Shifts      []shiftDoc         `json:"shifts,omitempty"`
}

type userDoc struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
	Role       string `json:"role"`
}

type workItemDoc struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"model_id"`
	StartedAt time.Time `json:"started_at"`
}

type bikeDoc struct {
	Manifest    map[string]int `json:"manifest"`
	UnsoldCount int            `json:"unsold_count"`
}

type orderDoc struct {
	ID        string      `json:"id"`
	ModelID   string      `json:"model_id"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
	Customer  customerDoc `json:"customer"`
	Config    configDoc   `json:"config"`
}

type customerDoc struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
	Address string `json:"address,omitempty"`
}

type configDoc struct {
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	WheelSize string `json:"wheel_size,omitempty"`
	Gears     string `json:"gears,omitempty"`
	Brakes    string `json:"brakes,omitempty"`
	Lights    string `json:"lights,omitempty"`
}

type maintenanceDoc struct {
	Station     string    `json:"station"`
	At          time.Time `json:"at"`
	Description string    `json:"description"`
}

type scheduledTaskDoc struct {
	At    time.Time `json:"at"`
	Task  string    `json:"task"`
	Notes string    `json:"notes,omitempty"`
}

type shiftDoc struct {
	Employee string    `json:"employee"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Role     string    `json:"role"`
}

// JSONCodec convierte factory.State <-> documento JSON.
type JSONCodec struct{}

// Encode serializa el estado. savedAt cero omite la marca de tiempo.
func (JSONCodec) Encode(s *factory.State, savedAt time.Time) ([]byte, error) {
	doc := document{
		Version:  DocumentVersion,
		Users:    make([]userDoc, 0, len(s.Users)),
		Parts:    make(map[string]int, len(s.Parts)),
		Stations: make([][]workItemDoc, len(s.Stations)),
		Bikes:    make(map[string]bikeDoc, len(s.Bikes)),
		Orders:   make([]orderDoc, 0, len(s.Orders)),
	}
	if !savedAt.IsZero() {
		t := savedAt.UTC()
		doc.SavedAt = &t
	}
	for _, u := range sortedUsers(s.Users) {
		doc.Users = append(doc.Users, userDoc{Username: u.Username, Credential: u.Credential, Role: string(u.Role)})
	}
	for id, q := range s.Parts {
		doc.Parts[id] = q
	}
	for i, items := range s.Stations {
		doc.Stations[i] = make([]workItemDoc, len(items))
		for j, it := range items {
			doc.Stations[i][j] = workItemDoc{ID: it.ID, ModelID: it.ModelID, StartedAt: it.StartedAt}
		}
	}
	for id, m := range s.Bikes {
		doc.Bikes[id] = bikeDoc{Manifest: m.Manifest.Clone(), UnsoldCount: m.Unsold}
	}
	for _, o := range s.Orders {
		doc.Orders = append(doc.Orders, orderDoc{
			ID:        o.ID,
			ModelID:   o.ModelID,
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt,
			ClosedAt:  o.ClosedAt,
			Customer:  customerDoc(o.Customer),
			Config:    configDoc(o.Config),
		})
	}
	for _, m := range s.Maintenance {
		doc.Maintenance = append(doc.Maintenance, maintenanceDoc{Station: m.Station, At: m.At, Description: m.Description})
	}
	for _, t := range s.Schedule {
		doc.Schedule = append(doc.Schedule, scheduledTaskDoc{At: t.At, Task: t.Task, Notes: t.Notes})
	}
	for _, sh := range s.Shifts {
		doc.Shifts = append(doc.Shifts, shiftDoc{Employee: sh.Employee, Start: sh.Start, End: sh.End, Role: string(sh.Role)})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode valida el documento y construye el estado. stageCount es el número de estaciones
// configuradas. Cualquier problema devuelve ErrCorruptSnapshot.
func (JSONCodec) Decode(data []byte, stageCount int) (*factory.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, corrupt("JSON inválido: %v", err)
	}
	for _, k := range requiredKeys {
		v, ok := raw[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, corrupt("falta la clave %q", k)
		}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupt("forma inválida: %v", err)
	}
	if doc.Version > DocumentVersion {
		return nil, corrupt("versión %d no soportada", doc.Version)
	}
	return doc.toState(stageCount)
}

func (doc *document) toState(stageCount int) (*factory.State, error) {
	if len(doc.Stations) != stageCount {
		return nil, corrupt("%d estaciones, se esperaban %d", len(doc.Stations), stageCount)
	}
	s := factory.NewState(stageCount)

	for _, u := range doc.Users {
		role := entity.Role(u.Role)
		if u.Username == "" || u.Credential == "" || !role.Valid() {
			return nil, corrupt("usuario %q inválido", u.Username)
		}
		if _, dup := s.Users[u.Username]; dup {
			return nil, corrupt("usuario %q duplicado", u.Username)
		}
		s.Users[u.Username] = entity.User{Username: u.Username, Credential: u.Credential, Role: role}
	}
	for id, q := range doc.Parts {
		if id == "" || q < 0 {
			return nil, corrupt("pieza %q con cantidad %d", id, q)
		}
		s.Parts[id] = q
	}
	for id, b := range doc.Bikes {
		if id == "" || b.UnsoldCount < 0 {
			return nil, corrupt("modelo %q con %d unidades", id, b.UnsoldCount)
		}
		for part, q := range b.Manifest {
			if q <= 0 {
				return nil, corrupt("modelo %q pide %d de %q", id, q, part)
			}
		}
		s.Bikes[id] = entity.BikeModel{ID: id, Manifest: entity.Manifest(b.Manifest).Clone(), Unsold: b.UnsoldCount}
	}

	seen := make(map[string]bool)
	for i, items := range doc.Stations {
		for _, it := range items {
			if it.ID == "" || seen[it.ID] {
				return nil, corrupt("ítem %q vacío o en dos estaciones", it.ID)
			}
			if _, ok := s.Bikes[it.ModelID]; !ok {
				return nil, corrupt("ítem %s de modelo desconocido %q", it.ID, it.ModelID)
			}
			seen[it.ID] = true
			s.Stations[i] = append(s.Stations[i], entity.WorkItem{ID: it.ID, ModelID: it.ModelID, StartedAt: it.StartedAt})
		}
	}

	orderIDs := make(map[string]bool, len(doc.Orders))
	for _, o := range doc.Orders {
		status := entity.OrderStatus(o.Status)
		if o.ID == "" || orderIDs[o.ID] || !status.Valid() {
			return nil, corrupt("pedido %q inválido", o.ID)
		}
		if _, ok := s.Bikes[o.ModelID]; !ok {
			return nil, corrupt("pedido %s de modelo desconocido %q", o.ID, o.ModelID)
		}
		orderIDs[o.ID] = true
		order := entity.Order{
			ID:        o.ID,
			ModelID:   o.ModelID,
			Status:    status,
			CreatedAt: o.CreatedAt,
			ClosedAt:  o.ClosedAt,
			Customer:  entity.Customer(o.Customer),
			Config:    entity.BikeConfig(o.Config),
		}
		s.Orders = append(s.Orders, order.Clone())
	}

	for _, m := range doc.Maintenance {
		s.Maintenance = append(s.Maintenance, entity.MaintenanceRecord{Station: m.Station, At: m.At, Description: m.Description})
	}
	for _, t := range doc.Schedule {
		s.Schedule = append(s.Schedule, entity.ScheduledTask{At: t.At, Task: t.Task, Notes: t.Notes})
	}
	for _, sh := range doc.Shifts {
		role := entity.Role(sh.Role)
		if !role.Valid() {
			return nil, corrupt("turno de %q con rol %q", sh.Employee, sh.Role)
		}
		s.Shifts = append(s.Shifts, entity.Shift{Employee: sh.Employee, Start: sh.Start, End: sh.End, Role: role})
	}
	return s, nil
}

func sortedUsers(m map[string]entity.User) []entity.User {
	out := make([]entity.User, 0, len(m))
	for _, u := range m {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}
