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

func newTransferUseCase(w *world) *TransferUseCase {
	return NewTransferUseCase(w.tx, w.warehouses)
}

func TestTransfer_CreaLoteDestino(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	source := w.addLot("lot-a", "prod-1", "wh-1", 20, 11, 3)

	tr, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-2",
		Quantity:      decimal.NewFromInt(8),
		UserID:        "user-1",
	})

	require.NoError(t, err)
	assert.True(t, w.lots.lots["lot-a"].CurrentQuantity.Equal(decimal.NewFromInt(12)))

	var dest *entity.Lot
	for _, lot := range w.lots.lots {
		if lot.WarehouseID == "wh-2" {
			dest = lot
		}
	}
	require.NotNil(t, dest)
	// El destino hereda número de proveedor, costo y fecha de entrada.
	assert.Equal(t, source.LotNumber, dest.LotNumber)
	assert.True(t, dest.UnitCost.Equal(source.UnitCost))
	assert.True(t, dest.EntryDate.Equal(source.EntryDate))
	assert.True(t, dest.CurrentQuantity.Equal(decimal.NewFromInt(8)))

	require.Len(t, w.transfers.transfers, 1)
	assert.Equal(t, tr.ID, w.transfers.transfers[0].ID)

	movs, _ := w.movements.ListByReference(entity.ReferenceTypeTransfer, tr.ID)
	require.Len(t, movs, 2)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-8)))
	assert.True(t, movs[1].Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, movs[0].Quantity.Add(movs[1].Quantity).IsZero())
}

func TestTransfer_AcreditaLoteDestinoExistente(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	source := w.addLot("lot-a", "prod-1", "wh-1", 20, 11, 3)
	dest := w.addLot("lot-b", "prod-1", "wh-2", 5, 11, 3)
	dest.LotNumber = source.LotNumber

	_, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-2",
		Quantity:      decimal.NewFromInt(8),
		UserID:        "user-1",
	})

	require.NoError(t, err)
	assert.True(t, w.lots.lots["lot-b"].CurrentQuantity.Equal(decimal.NewFromInt(13)))
	assert.True(t, w.lots.lots["lot-b"].InitialQuantity.Equal(decimal.NewFromInt(13)))
	// No se creó un tercer lote.
	assert.Len(t, w.lots.lots, 2)
}

func TestTransfer_MismaBodega(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 20, 11, 3)

	_, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-1",
		Quantity:      decimal.NewFromInt(5),
		UserID:        "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_FaltanteRevierte(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 5, 11, 3)

	_, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-2",
		Quantity:      decimal.NewFromInt(10),
		UserID:        "user-1",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, w.lots.lots["lot-a"].CurrentQuantity.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, w.transfers.transfers)
	assert.Empty(t, w.movements.movements)
}

func TestTransfer_AgotaLoteOrigen(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 8, 11, 3)

	_, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-2",
		Quantity:      decimal.NewFromInt(8),
		UserID:        "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusSoldOut, w.lots.lots["lot-a"].Status)
}

func TestTransfer_BodegaDestinoInexistente(t *testing.T) {
	w := newWorld()
	uc := newTransferUseCase(w)
	w.addLot("lot-a", "prod-1", "wh-1", 8, 11, 3)

	_, err := uc.Transfer(context.Background(), TransferInput{
		LotID:         "lot-a",
		ToWarehouseID: "wh-x",
		Quantity:      decimal.NewFromInt(2),
		UserID:        "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
