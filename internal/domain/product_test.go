package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockcount/internal/domain"
)

func TestProduct_UnitsFor(t *testing.T) {
	caixa := domain.Product{UnitsPerPackage: 12}

	tests := []struct {
		name     string
		product  domain.Product
		packages int
		want     int
		ok       bool
	}{
		{"dez caixas de doze", caixa, 10, 120, true},
		{"zero pacotes", caixa, 0, 0, true},
		{"no limite exato", domain.Product{UnitsPerPackage: 1}, domain.MaxQuantity, domain.MaxQuantity, true},
		{"acima do INTEGER", caixa, 1_000_000_000, 0, false},
		{"estouraria o int", caixa, math.MaxInt64 / 8, 0, false},
		{"pacotes negativos", caixa, -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.product.UnitsFor(tt.packages)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
