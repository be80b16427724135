package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/bikefactory/internal/domain"
)

// OrderStatus estado de un pedido. Solo se permiten Pending->Completed y Pending->Cancelled.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// Valid indica si el estado es conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Customer datos de contacto del cliente.
type Customer struct {
	Name    string
	Contact string
	Address string
}

// BikeConfig configuración solicitada para la bicicleta (valores vacíos = sin preferencia).
type BikeConfig struct {
	Size      string
	Color     string
	WheelSize string
	Gears     string
	Brakes    string
	Lights    string
}

// Opciones válidas de configuración de pedidos.
var (
	OrderSizes      = []string{"Small", "Medium", "Large", "Extra Large"}
	OrderColors     = []string{"Red", "Blue", "Green", "Black", "White", "Yellow"}
	OrderWheelSizes = []string{"26 inches", "27.5 inches", "29 inches"}
	OrderGears      = []string{"Standard Gears", "Premium Gears"}
	OrderBrakes     = []string{"Disc Brakes", "Rim Brakes"}
	OrderLights     = []string{"LED Lights", "Standard Lights"}
)

// Validate comprueba que cada valor informado pertenezca a su lista de opciones.
func (c BikeConfig) Validate() error {
	fields := []struct {
		name, value string
		options     []string
	}{
		{"size", c.Size, OrderSizes},
		{"color", c.Color, OrderColors},
		{"wheel_size", c.WheelSize, OrderWheelSizes},
		{"gears", c.Gears, OrderGears},
		{"brakes", c.Brakes, OrderBrakes},
		{"lights", c.Lights, OrderLights},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !contains(f.options, f.value) {
			return fmt.Errorf("%w: %s %q no es una opción válida", domain.ErrInvalidArgument, f.name, f.value)
		}
	}
	return nil
}

// Order pedido de cliente sobre un modelo de bicicleta.
type Order struct {
	ID        string
	ModelID   string
	Status    OrderStatus
	CreatedAt time.Time
	ClosedAt  *time.Time // fecha de Completed o Cancelled
	Customer  Customer
	Config    BikeConfig
}

// Complete pasa el pedido de Pending a Completed.
func (o *Order) Complete(now time.Time) error {
	if o.Status != OrderPending {
		return fmt.Errorf("%w: pedido %s está %s", domain.ErrInvalidState, o.ID, o.Status)
	}
	o.Status = OrderCompleted
	o.ClosedAt = &now
	return nil
}

// Cancel pasa el pedido de Pending a Cancelled.
func (o *Order) Cancel(now time.Time) error {
	if o.Status != OrderPending {
		return fmt.Errorf("%w: pedido %s está %s", domain.ErrInvalidState, o.ID, o.Status)
	}
	o.Status = OrderCancelled
	o.ClosedAt = &now
	return nil
}

// Clone copia el pedido sin compartir ClosedAt.
func (o Order) Clone() Order {
	if o.ClosedAt != nil {
		t := *o.ClosedAt
		o.ClosedAt = &t
	}
	return o
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
