package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para dar contexto;
// los llamadores deben comparar con errors.Is.
var (
	ErrPermissionDenied  = errors.New("permiso denegado")
	ErrInvalidArgument   = errors.New("argumento inválido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyStation      = errors.New("estación vacía")
	ErrUnknownModel      = errors.New("modelo de bicicleta desconocido")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrNoStockAvailable  = errors.New("no hay bicicletas ensambladas disponibles")
	ErrCorruptSnapshot   = errors.New("snapshot corrupto")
	ErrUnauthorized      = errors.New("credenciales inválidas")
)
