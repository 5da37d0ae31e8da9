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

func newMovementUseCase(w *world) *RegisterMovementUseCase {
	return NewRegisterMovementUseCase(w.tx, w.products, w.warehouses)
}

func costPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestRegisterMovement_CompraCreaLote(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypePurchase,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		LotNumber:   "PROV-7001",
		Quantity:    decimal.NewFromInt(40),
		UnitCost:    costPtr(9.5),
		UserID:      "user-1",
	})

	require.NoError(t, err)
	require.Len(t, w.lots.lots, 1)
	require.Len(t, w.movements.movements, 1)
	mov := w.movements.movements[0]
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(40)))
	assert.True(t, mov.TotalCost.Equal(decimal.NewFromInt(380)))
}

func TestRegisterMovement_CompraSobreLoteRepondera(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 10, 10, 2)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypePurchase,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		LotID:       "lot-a",
		Quantity:    decimal.NewFromInt(10),
		UnitCost:    costPtr(20),
		UserID:      "user-1",
	})

	require.NoError(t, err)
	lot := w.lots.lots["lot-a"]
	// (10×10 + 10×20) / 20 = 15
	assert.True(t, lot.UnitCost.Equal(decimal.NewFromInt(15)), "costo reponderado: %s", lot.UnitCost)
	assert.True(t, lot.CurrentQuantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, lot.InitialQuantity.Equal(decimal.NewFromInt(20)))
}

func TestRegisterMovement_SalidaConsumePEPS(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)
	w.addLot("lot-viejo", "prod-1", "wh-1", 10, 8, 5)
	w.addLot("lot-nuevo", "prod-1", "wh-1", 10, 9, 1)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypeSale,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(14),
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusSoldOut, w.lots.lots["lot-viejo"].Status)
	assert.True(t, w.lots.lots["lot-nuevo"].CurrentQuantity.Equal(decimal.NewFromInt(6)))
	require.Len(t, w.movements.movements, 2)
	assert.True(t, w.movements.movements[0].Quantity.Equal(decimal.NewFromInt(-10)))
	assert.True(t, w.movements.movements[1].Quantity.Equal(decimal.NewFromInt(-4)))
}

func TestRegisterMovement_FaltanteRevierteTodo(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 10, 8, 1)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypeSale,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(25),
		UserID:      "user-1",
	})

	require.Error(t, err)
	var shortfall *domain.StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, shortfall.Available.Equal(decimal.NewFromInt(10)))
	// Rollback: el lote queda intacto y no hay movimientos.
	assert.True(t, w.lots.lots["lot-a"].CurrentQuantity.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, w.movements.movements)
}

func TestRegisterMovement_MermaDejaLoteDamaged(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 5, 8, 1)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypeWaste,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		LotID:       "lot-a",
		Quantity:    decimal.NewFromInt(5),
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusDamaged, w.lots.lots["lot-a"].Status)
	// La merma siempre resta aunque llegue positiva.
	assert.True(t, w.movements.movements[0].Quantity.Equal(decimal.NewFromInt(-5)))
}

func TestRegisterMovement_AjustePositivoAcreditaPrimerLote(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)
	w.addLot("lot-viejo", "prod-1", "wh-1", 10, 8, 5)
	w.addLot("lot-nuevo", "prod-1", "wh-1", 10, 9, 1)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypeAdjustment,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(3),
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.True(t, w.lots.lots["lot-viejo"].CurrentQuantity.Equal(decimal.NewFromInt(13)))
	assert.True(t, w.lots.lots["lot-nuevo"].CurrentQuantity.Equal(decimal.NewFromInt(10)))
}

func TestRegisterMovement_TrasladoRechazado(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypeTransfer,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(1),
		UserID:      "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_CompraSinCosto(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypePurchase,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(10),
		UserID:      "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	w := newWorld()
	uc := newMovementUseCase(w)

	err := uc.RegisterMovement(context.Background(), MovementInput{
		Type:        entity.MovementTypePurchase,
		ProductID:   "prod-x",
		WarehouseID: "wh-1",
		Quantity:    decimal.NewFromInt(10),
		UnitCost:    costPtr(5),
		UserID:      "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
