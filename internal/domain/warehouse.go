package domain

import (
	"time"
)

// Warehouse representa um armazém físico onde o estoque é mantido e contado.
type Warehouse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseInput é o payload de criação/atualização de armazéns.
type WarehouseInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"required,max=200"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}
