package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

func newWasteUseCase(w *world) *WasteUseCase {
	return NewWasteUseCase(w.tx, w.wastes, w.products, w.warehouses)
}

func TestRecordWaste_DescuentaLote(t *testing.T) {
	w := newWorld()
	uc := newWasteUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 10, 12, 2)

	waste, err := uc.RecordWaste(context.Background(), RecordWasteInput{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		LotID:       "lot-a",
		Quantity:    decimal.NewFromInt(4),
		Type:        entity.WasteTypeDamage,
		Reason:      "caída en cámara fría",
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.True(t, w.lots.lots["lot-a"].CurrentQuantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, waste.UnitCost.Equal(decimal.NewFromInt(12)))
	assert.True(t, waste.TotalCost.Equal(decimal.NewFromInt(48)))
	require.Len(t, w.wastes.wastes, 1)

	movs, _ := w.movements.ListByReference(entity.ReferenceTypeWaste, waste.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeWaste, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-4)))
}

func TestRecordWaste_LoteACeroQuedaDamaged(t *testing.T) {
	w := newWorld()
	uc := newWasteUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 4, 12, 2)

	_, err := uc.RecordWaste(context.Background(), RecordWasteInput{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		LotID:       "lot-a",
		Quantity:    decimal.NewFromInt(4),
		Type:        entity.WasteTypeExpiry,
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusDamaged, w.lots.lots["lot-a"].Status)
}

func TestRecordWaste_SinLoteAsignaPEPS(t *testing.T) {
	w := newWorld()
	uc := newWasteUseCase(w)
	w.addLot("lot-viejo", "prod-1", "wh-1", 3, 10, 5)
	w.addLot("lot-nuevo", "prod-1", "wh-1", 10, 20, 1)

	waste, err := uc.RecordWaste(context.Background(), RecordWasteInput{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(5),
		Type:        entity.WasteTypeQuality,
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusSoldOut, w.lots.lots["lot-viejo"].Status)
	assert.True(t, w.lots.lots["lot-nuevo"].CurrentQuantity.Equal(decimal.NewFromInt(8)))
	// Costo ponderado de lo consumido: (3×10 + 2×20) / 5 = 14.
	assert.True(t, waste.UnitCost.Equal(decimal.NewFromInt(14)), "costo: %s", waste.UnitCost)
	assert.True(t, waste.TotalCost.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "lot-viejo", waste.LotID)
}

func TestRecordWaste_FaltanteRevierte(t *testing.T) {
	w := newWorld()
	uc := newWasteUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 3, 10, 1)

	_, err := uc.RecordWaste(context.Background(), RecordWasteInput{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(5),
		Type:        entity.WasteTypeTheft,
		UserID:      "user-1",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, w.lots.lots["lot-a"].CurrentQuantity.Equal(decimal.NewFromInt(3)))
	assert.Empty(t, w.wastes.wastes)
	assert.Empty(t, w.movements.movements)
}

func TestRecordWaste_TipoInvalido(t *testing.T) {
	w := newWorld()
	uc := newWasteUseCase(w)

	_, err := uc.RecordWaste(context.Background(), RecordWasteInput{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(1),
		Type:        "VAPORIZED",
		UserID:      "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
