package entity

// Role rol de un usuario dentro de la fábrica.
type Role string

// Roles válidos para User.
const (
	RoleAdmin            Role = "Admin"
	RoleProductionWorker Role = "ProductionWorker"
	RoleInventoryManager Role = "InventoryManager"
	RoleSales            Role = "Sales"
)

// BuiltinAdmin usuario administrador que no puede eliminarse.
const BuiltinAdmin = "admin"

// Roles devuelve los roles válidos en orden estable.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProductionWorker, RoleInventoryManager, RoleSales}
}

// Valid indica si el rol es uno de los cuatro conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProductionWorker, RoleInventoryManager, RoleSales:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	Username   string
	Credential string // bcrypt hash; se compara, nunca se inspecciona
	Role       Role
}
