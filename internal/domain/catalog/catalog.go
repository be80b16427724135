// Package catalog describe la configuración fija de la fábrica: estaciones, piezas,
// modelos y usuarios iniciales. Con ella se siembra el estado cuando no hay snapshot.
package catalog

import (
	"fmt"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
)

// SeedUser usuario inicial con contraseña en texto (se hashea al sembrar).
type SeedUser struct {
	Username string
	Password string
	Role     entity.Role
}

// Catalog configuración de la fábrica.
type Catalog struct {
	Stations []entity.Station
	Parts    map[string]int
	Models   map[string]entity.Manifest
	Users    []SeedUser
}

// Default catálogo de la fábrica original: 10 estaciones, 8 piezas y 5 modelos.
func Default() *Catalog {
	return &Catalog{
		Stations: []entity.Station{
			{Name: "FrameWelded", Manifest: entity.Manifest{"Tubular Steel": 2}},
			{Name: "ForkWelded"},
			{Name: "FrontForkAssembly"},
			{Name: "Painting"},
			{Name: "PedalAddition"},
			{Name: "WheelAddition"},
			{Name: "ChainGear"},
			{Name: "BrakeAddition"},
			{Name: "LightAddition"},
			{Name: "SeatInstallation"},
		},
		Parts: map[string]int{
			"Tubular Steel":   20,
			"Wheels":          20,
			"Seats":           10,
			"Gears":           15,
			"Brakes":          15,
			"Lights":          10,
			"Motors":          5,
			"Shock Absorbers": 5,
		},
		Models: map[string]entity.Manifest{
			"Sport":    {"Tubular Steel": 2, "Wheels": 2, "Seats": 1, "Gears": 1, "Brakes": 1, "Lights": 1},
			"Tour":     {"Tubular Steel": 3, "Wheels": 2, "Seats": 1, "Gears": 2, "Brakes": 2, "Lights": 1},
			"Commute":  {"Tubular Steel": 2, "Wheels": 2, "Seats": 1, "Gears": 1, "Brakes": 1, "Lights": 1},
			"Electric": {"Tubular Steel": 2, "Wheels": 2, "Seats": 1, "Gears": 1, "Brakes": 1, "Lights": 1, "Motors": 1},
			"Offroad":  {"Tubular Steel": 3, "Wheels": 2, "Seats": 1, "Gears": 2, "Brakes": 2, "Lights": 1, "Shock Absorbers": 2},
		},
		Users: []SeedUser{
			{Username: "admin", Password: "password", Role: entity.RoleAdmin},
			{Username: "worker1", Password: "w123", Role: entity.RoleProductionWorker},
			{Username: "manager1", Password: "m123", Role: entity.RoleInventoryManager},
			{Username: "sales1", Password: "s123", Role: entity.RoleSales},
		},
	}
}

// Validate verifica la coherencia del catálogo: al menos una estación, cantidades no
// negativas y manifiestos que solo referencian piezas conocidas. Solo la estación de
// entrada puede tener manifiesto.
func (c *Catalog) Validate() error {
	if len(c.Stations) == 0 {
		return fmt.Errorf("%w: el catálogo necesita al menos una estación", domain.ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(c.Stations))
	for i, st := range c.Stations {
		if st.Name == "" || seen[st.Name] {
			return fmt.Errorf("%w: estación %q vacía o duplicada", domain.ErrInvalidArgument, st.Name)
		}
		seen[st.Name] = true
		if i > 0 && len(st.Manifest) > 0 {
			return fmt.Errorf("%w: estación %s consume piezas pero no es la de entrada", domain.ErrInvalidArgument, st.Name)
		}
		if err := c.checkManifest("estación "+st.Name, st.Manifest); err != nil {
			return err
		}
	}
	for id, qty := range c.Parts {
		if id == "" || qty < 0 {
			return fmt.Errorf("%w: pieza %q con cantidad %d", domain.ErrInvalidArgument, id, qty)
		}
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("%w: el catálogo necesita al menos un modelo", domain.ErrInvalidArgument)
	}
	for id, m := range c.Models {
		if id == "" {
			return fmt.Errorf("%w: modelo sin identificador", domain.ErrInvalidArgument)
		}
		if err := c.checkManifest("modelo "+id, m); err != nil {
			return err
		}
	}
	for _, u := range c.Users {
		if u.Username == "" || u.Password == "" || !u.Role.Valid() {
			return fmt.Errorf("%w: usuario inicial %q inválido", domain.ErrInvalidArgument, u.Username)
		}
	}
	return nil
}

func (c *Catalog) checkManifest(owner string, m entity.Manifest) error {
	for partID, qty := range m {
		if _, ok := c.Parts[partID]; !ok {
			return fmt.Errorf("%w: %s usa la pieza desconocida %q", domain.ErrInvalidArgument, owner, partID)
		}
		if qty <= 0 {
			return fmt.Errorf("%w: %s pide %d de %q", domain.ErrInvalidArgument, owner, qty, partID)
		}
	}
	return nil
}

// Seed construye el estado inicial. hash convierte la contraseña en credencial opaca.
func (c *Catalog) Seed(hash func(password string) (string, error)) (*factory.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := factory.NewState(len(c.Stations))
	for id, qty := range c.Parts {
		s.Parts[id] = qty
	}
	for id, m := range c.Models {
		s.Bikes[id] = entity.BikeModel{ID: id, Manifest: m.Clone()}
	}
	for _, u := range c.Users {
		cred, err := hash(u.Password)
		if err != nil {
			return nil, fmt.Errorf("hashear credencial de %s: %w", u.Username, err)
		}
		s.Users[u.Username] = entity.User{Username: u.Username, Credential: cred, Role: u.Role}
	}
	return s, nil
}
