package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/inventory"
)

func lote(id string, entryDay int, current, reserved, unitCost float64) *entity.Lot {
	return &entity.Lot{
		ID:              id,
		ProductID:       "prod-1",
		WarehouseID:     "wh-1",
		Status:          entity.LotStatusAvailable,
		CurrentQuantity: decimal.NewFromFloat(current),
		ReservedQuantity: decimal.NewFromFloat(reserved),
		UnitCost:        decimal.NewFromFloat(unitCost),
		EntryDate:       time.Date(2026, 3, entryDay, 0, 0, 0, 0, time.UTC),
	}
}

// TestAllocateFIFO_OrdenPEPS verifica la regla de negocio central: con lotes
// L1 (día 1, qty 5) y L2 (día 2, qty 5), pedir 7 consume los 5 de L1 y 2 de
// L2, nunca al revés.
func TestAllocateFIFO_OrdenPEPS(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 1, 5, 0, 2.00),
		lote("L2", 2, 5, 0, 3.00),
	}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(7))
	require.NoError(t, err)
	require.Len(t, alloc.Takes, 2)

	assert.Equal(t, "L1", alloc.Takes[0].Lot.ID)
	assert.True(t, alloc.Takes[0].Quantity.Equal(decimal.NewFromInt(5)), "L1 se agota primero")
	assert.Equal(t, "L2", alloc.Takes[1].Lot.ID)
	assert.True(t, alloc.Takes[1].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "L1", alloc.FirstLotID())
}

func TestAllocateFIFO_UnSoloLoteSuficiente(t *testing.T) {
	lots := []*entity.Lot{lote("L1", 1, 10, 0, 2.50)}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(4))
	require.NoError(t, err)
	require.Len(t, alloc.Takes, 1)
	assert.True(t, alloc.TotalQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, alloc.TotalCost.Equal(decimal.NewFromInt(10)), "4 × 2.50 = 10.00")
}

// TestAllocateFIFO_FaltanteRetornaShortfall verifica que el faltante viaja en
// el error tipado y que no se entrega asignación parcial.
func TestAllocateFIFO_FaltanteRetornaShortfall(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 1, 3, 0, 2.00),
		lote("L2", 2, 2, 0, 2.00),
	}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(8))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var shortfall *domain.StockShortfallError
	require.True(t, errors.As(err, &shortfall))
	assert.True(t, shortfall.Missing().Equal(decimal.NewFromInt(3)), "faltan 8 − 5 = 3")
	assert.Empty(t, alloc.Takes, "sin asignación parcial ante faltante")
}

// TestAllocateFIFO_RespetaReservas: la cantidad reservada de un lote no es
// asignable.
func TestAllocateFIFO_RespetaReservas(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 1, 10, 6, 2.00), // solo 4 disponibles
		lote("L2", 2, 10, 0, 2.00),
	}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(6))
	require.NoError(t, err)
	require.Len(t, alloc.Takes, 2)
	assert.True(t, alloc.Takes[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, alloc.Takes[1].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestAllocateFIFO_SaltaLotesSinDisponible(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 1, 0, 0, 2.00),
		lote("L2", 2, 5, 5, 2.00), // todo reservado
		lote("L3", 3, 5, 0, 2.00),
	}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.Len(t, alloc.Takes, 1)
	assert.Equal(t, "L3", alloc.Takes[0].Lot.ID)
}

func TestAllocateFIFO_CantidadInvalida(t *testing.T) {
	lots := []*entity.Lot{lote("L1", 1, 5, 0, 2.00)}

	_, err := inventory.AllocateFIFO("prod-1", lots, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestAllocateFIFO_CostoPromedio: el costo unitario promedio pondera por la
// cantidad tomada de cada lote.
func TestAllocateFIFO_CostoPromedio(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 1, 5, 0, 2.00),
		lote("L2", 2, 5, 0, 4.00),
	}

	alloc, err := inventory.AllocateFIFO("prod-1", lots, decimal.NewFromInt(10))
	require.NoError(t, err)
	// (5×2 + 5×4) / 10 = 3.00
	assert.True(t, alloc.WeightedUnitCost().Equal(decimal.NewFromInt(3)))
}

func TestWeightedAverageCost(t *testing.T) {
	// 10 unidades a 2.00 + 10 unidades a 4.00 → 3.00
	got := inventory.WeightedAverageCost(
		decimal.NewFromInt(10), decimal.NewFromInt(2),
		decimal.NewFromInt(10), decimal.NewFromInt(4),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(3)))

	// Sin cantidad total el costo es cero, no división por cero.
	got = inventory.WeightedAverageCost(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(4))
	assert.True(t, got.IsZero())
}
