// Package access contiene la tabla declarativa rol -> acción que consultan todos los
// casos de uso que mutan estado.
package access

import (
	"fmt"

	"github.com/jhoicas/bikefactory/internal/domain"
	"github.com/jhoicas/bikefactory/internal/domain/entity"
)

// Action identificador de una acción protegida.
type Action string

// Acciones protegidas.
const (
	ActionAdvanceStation    Action = "advance_station"
	ActionAssembleBike      Action = "assemble_bike"
	ActionReplenishParts    Action = "replenish_parts"
	ActionCreateOrder       Action = "create_order"
	ActionCompleteOrder     Action = "complete_order"
	ActionCancelOrder       Action = "cancel_order"
	ActionManageMaintenance Action = "manage_maintenance"
	ActionManageUsers       Action = "manage_users"
	ActionManageSchedule    Action = "manage_schedule"
	ActionManageShifts      Action = "manage_shifts"
)

var (
	admin     = entity.RoleAdmin
	worker    = entity.RoleProductionWorker
	manager   = entity.RoleInventoryManager
	sales     = entity.RoleSales
	permTable = map[Action]map[entity.Role]bool{
		ActionAdvanceStation:    {admin: true, worker: true},
		ActionAssembleBike:      {admin: true, worker: true},
		ActionReplenishParts:    {admin: true, manager: true},
		ActionCreateOrder:       {admin: true, sales: true},
		ActionCompleteOrder:     {admin: true, worker: true},
		ActionCancelOrder:       {admin: true, sales: true},
		ActionManageMaintenance: {admin: true, manager: true},
		ActionManageUsers:       {admin: true, manager: true},
		ActionManageSchedule:    {admin: true, worker: true},
		ActionManageShifts:      {admin: true, manager: true},
	}
)

// Actions devuelve todas las acciones de la tabla.
func Actions() []Action {
	return []Action{
		ActionAdvanceStation, ActionAssembleBike, ActionReplenishParts,
		ActionCreateOrder, ActionCompleteOrder, ActionCancelOrder,
		ActionManageMaintenance, ActionManageUsers, ActionManageSchedule, ActionManageShifts,
	}
}

// Authorize es función pura de la tabla estática. Rol o acción desconocidos: false.
func Authorize(role entity.Role, action Action) bool {
	return permTable[action][role]
}

// Principal identidad de la sesión actual (fijada una vez en el login).
type Principal struct {
	Username string
	Role     entity.Role
}

// Require devuelve ErrPermissionDenied si el principal no puede ejecutar la acción.
func Require(p Principal, action Action) error {
	if !Authorize(p.Role, action) {
		return fmt.Errorf("%w: rol %q no puede %s", domain.ErrPermissionDenied, p.Role, action)
	}
	return nil
}
