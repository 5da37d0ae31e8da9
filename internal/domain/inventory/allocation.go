package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// LotTake es la porción de un lote asignada a una operación de consumo.
type LotTake struct {
	Lot      *entity.Lot
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Allocation es el resultado de repartir una cantidad requerida entre lotes
// en orden PEPS. TotalCost = Σ (cantidad tomada × costo unitario del lote).
type Allocation struct {
	Takes         []LotTake
	TotalQuantity decimal.Decimal
	TotalCost     decimal.Decimal
}

// FirstLotID devuelve el ID del primer lote asignado (trazabilidad en SaleItem).
func (a Allocation) FirstLotID() string {
	if len(a.Takes) == 0 {
		return ""
	}
	return a.Takes[0].Lot.ID
}

// WeightedUnitCost devuelve el costo unitario promedio de la asignación.
func (a Allocation) WeightedUnitCost() decimal.Decimal {
	if a.TotalQuantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return a.TotalCost.Div(a.TotalQuantity)
}

// AllocateFIFO reparte required entre los lotes recibidos en orden PEPS
// (primero en entrar, primero en salir). Los lotes deben venir ya ordenados
// por fecha de entrada ascendente con desempate por ID, que es exactamente el
// orden que entrega el repositorio de lotes; esta función no reordena.
//
// De cada lote se toma min(disponible, restante) donde disponible descuenta
// la cantidad reservada. Si los lotes se agotan con faltante, retorna
// *domain.StockShortfallError y NINGUNA asignación parcial: el caller decide
// dentro de su transacción y el rollback descarta cualquier efecto.
func AllocateFIFO(productID string, lots []*entity.Lot, required decimal.Decimal) (Allocation, error) {
	if required.LessThanOrEqual(decimal.Zero) {
		return Allocation{}, domain.ErrInvalidInput
	}

	var alloc Allocation
	remaining := required
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		available := lot.AvailableQuantity()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := decimal.Min(available, remaining)
		alloc.Takes = append(alloc.Takes, LotTake{Lot: lot, Quantity: take, UnitCost: lot.UnitCost})
		alloc.TotalQuantity = alloc.TotalQuantity.Add(take)
		alloc.TotalCost = alloc.TotalCost.Add(take.Mul(lot.UnitCost))
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return Allocation{}, &domain.StockShortfallError{
			ProductID: productID,
			Requested: required,
			Available: alloc.TotalQuantity,
		}
	}
	return alloc, nil
}
