package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPackagingUnit é o rótulo usado quando o produto não informa a embalagem.
const DefaultPackagingUnit = "Unidad"

// Product representa um item do catálogo.
// UnitsPerPackage é o fator de conversão entre uma embalagem física e unidades de estoque.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" swaggertype:"string" example:"19.90"`
	PackagingUnit   string          `json:"packaging_unit"`
	UnitsPerPackage int             `json:"units_per_package"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MaxQuantity é o maior valor aceito pelas colunas INTEGER de quantidade e embalagens.
const MaxQuantity = math.MaxInt32

// UnitsFor converte uma contagem de embalagens em unidades de estoque.
// ok é falso quando o resultado não cabe em MaxQuantity.
func (p Product) UnitsFor(packages int) (units int, ok bool) {
	if packages < 0 || packages > MaxQuantity {
		return 0, false
	}
	if p.UnitsPerPackage > 0 && packages > MaxQuantity/p.UnitsPerPackage {
		return 0, false
	}
	return packages * p.UnitsPerPackage, true
}

// ProductInput é o payload de criação/atualização de produtos.
type ProductInput struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Description     string          `json:"description" validate:"max=500"`
	Price           decimal.Decimal `json:"price" swaggertype:"string"`
	PackagingUnit   string          `json:"packaging_unit" validate:"max=50"`
	UnitsPerPackage int             `json:"units_per_package" validate:"gte=0"`
}
