package dto

import "time"

// CreateOrderRequest datos de un pedido nuevo. Los campos de configuración son opcionales.
type CreateOrderRequest struct {
	ModelID      string `json:"model_id"`
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
	Address      string `json:"address"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	WheelSize    string `json:"wheel_size,omitempty"`
	Gears        string `json:"gears,omitempty"`
	Brakes       string `json:"brakes,omitempty"`
	Lights       string `json:"lights,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string     `json:"id"`
	ModelID      string     `json:"model_id"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	Contact      string     `json:"contact,omitempty"`
	Address      string     `json:"address,omitempty"`
	Size         string     `json:"size,omitempty"`
	Color        string     `json:"color,omitempty"`
	WheelSize    string     `json:"wheel_size,omitempty"`
	Gears        string     `json:"gears,omitempty"`
	Brakes       string     `json:"brakes,omitempty"`
	Lights       string     `json:"lights,omitempty"`
}
