package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo. El stock vive en los
// lotes, no aquí; Price es el precio de venta al público.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	TaxRate     decimal.Decimal // tasa de IVA del producto; 0 usa la tasa por defecto
	Unit        string          // unidad de medida (pieza, kg, lt)
	SoldByWeight bool           // true si la cantidad de venta viene de báscula
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
