package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

func newSessionUseCase(w *world) *SessionUseCase {
	return NewSessionUseCase(w.sessions, w.registers, w.users, w.log, decimal.NewFromInt(50))
}

func TestOpenSession(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)

	session, err := uc.OpenSession(context.Background(), OpenSessionInput{
		CashRegisterID: "reg-1",
		UserID:         "cajero-1",
		OpeningCash:    decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusOpen, session.Status)
	assert.True(t, session.OpeningCash.Equal(decimal.NewFromInt(500)))
}

func TestOpenSession_SegundaAperturaMismaCaja(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)

	_, err := uc.OpenSession(context.Background(), OpenSessionInput{
		CashRegisterID: "reg-1",
		UserID:         "cajero-1",
		OpeningCash:    decimal.NewFromInt(300),
	})

	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)
}

func TestOpenSession_CajaInactiva(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)

	_, err := uc.OpenSession(context.Background(), OpenSessionInput{
		CashRegisterID: "reg-2",
		UserID:         "cajero-1",
		OpeningCash:    decimal.NewFromInt(300),
	})

	assert.ErrorIs(t, err, domain.ErrRegisterInactive)
}

func TestCloseSession_ArqueoCuadrado(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)
	w.addLot("lot-a", "prod-1", "wh-1", 50, 12, 3)
	vende(t, w, 2, 69.60)

	// Esperado: 500 + 69.60 = 569.60; contado exacto.
	session, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromFloat(569.60),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusClosed, session.Status)
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromFloat(569.6)))
	assert.True(t, session.CashDifference.IsZero())
	assert.NotNil(t, session.ClosedAt)
}

func TestCloseSession_DiferenciaBajoUmbral(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)

	// Faltan 20: se registra pero no se alerta.
	session, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(480),
	})

	require.NoError(t, err)
	assert.True(t, session.CashDifference.Equal(decimal.NewFromInt(-20)))
	assert.Empty(t, session.Notes)
}

func TestCloseSession_DiferenciaSobreUmbral(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)

	session, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(400),
	})

	require.NoError(t, err)
	assert.True(t, session.CashDifference.Equal(decimal.NewFromInt(-100)))
	assert.Contains(t, session.Notes, "diferencia de caja")
}

func TestCloseSession_SoloEfectivoCuentaParaElEsperado(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)
	w.addLot("lot-a", "prod-1", "wh-1", 50, 12, 3)

	// Venta pagada con tarjeta: no entra al efectivo esperado.
	_, err := newCreateSaleUseCase(w).CreateSale(context.Background(), CreateSaleInput{
		SessionID: "sess-1",
		CashierID: "cajero-1",
		Items:     []SaleItemInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(2)}},
		Payments: []SalePaymentInput{
			{Method: entity.PaymentMethodCard, Amount: decimal.NewFromFloat(69.60)},
		},
	})
	require.NoError(t, err)

	session, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromInt(500)))
	assert.True(t, session.CashDifference.IsZero())
}

func TestCloseSession_DobleCierre(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)

	_, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	_, err = uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestCloseSession_VentaAnuladaNoCuentaEnElArqueo(t *testing.T) {
	w := newWorld()
	uc := newSessionUseCase(w)
	w.openSession("sess-1", 500)
	w.addLot("lot-a", "prod-1", "wh-1", 50, 12, 3)
	sale := vende(t, w, 2, 69.60)
	_, err := newCancelSaleUseCase(w).CancelSale(context.Background(), sale.ID, "cajero-1", "")
	require.NoError(t, err)

	session, err := uc.CloseSession(context.Background(), CloseSessionInput{
		SessionID:  "sess-1",
		UserID:     "cajero-1",
		ActualCash: decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	// El efectivo de la venta anulada no forma parte del esperado.
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromInt(500)))
	assert.True(t, session.CashDifference.IsZero())
}
