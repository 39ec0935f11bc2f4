package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem é uma linha de estoque.
// CountID nulo indica estoque avulso (standalone) do armazém, fora de qualquer contagem.
// Quantity = PackagesCount × UnitsPerPackage do produto no momento do cálculo.
type InventoryItem struct {
	ID            int64     `json:"id"`
	CountID       *int64    `json:"count_id"`
	WarehouseID   int64     `json:"warehouse_id"`
	ProductID     int64     `json:"product_id"`
	PackagesCount int       `json:"packages_count"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CountItemInput é o payload para adicionar um item a uma contagem.
type CountItemInput struct {
	ProductID     int64 `json:"product_id" validate:"required,gt=0"`
	PackagesCount int   `json:"packages_count" validate:"gte=0"`
}

// InventoryItemInput é o payload para registrar estoque em um armazém.
type InventoryItemInput struct {
	CountID       *int64 `json:"count_id"`
	WarehouseID   int64  `json:"warehouse_id" validate:"required,gt=0"`
	ProductID     int64  `json:"product_id" validate:"required,gt=0"`
	PackagesCount int    `json:"packages_count" validate:"gte=0"`
}

// InventoryDetail é uma linha do resumo de estoque de um armazém.
type InventoryDetail struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" swaggertype:"string"`
	Quantity     int             `json:"quantity"`
}

// WarehouseInventory é o resumo de estoque avulso de um armazém.
type WarehouseInventory struct {
	WarehouseID        int64             `json:"warehouse_id"`
	WarehouseName      string            `json:"warehouse_name"`
	WarehouseLocation  string            `json:"warehouse_location"`
	TotalProductsCount int               `json:"total_products_count"`
	Items              []InventoryDetail `json:"items"`
}

// ProductQuantity é a quantidade avulsa de um produto em um armazém.
type ProductQuantity struct {
	WarehouseID int64 `json:"warehouse_id"`
	ProductID   int64 `json:"product_id"`
	Quantity    int   `json:"quantity"`
}
