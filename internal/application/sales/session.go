package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
	"github.com/restoqly/restopos-api/pkg/logger"
)

// SessionUseCase maneja apertura y arqueo de cierre de sesiones de caja.
// La unicidad de sesión OPEN por caja la garantiza el índice único parcial;
// aquí solo se corta temprano con una consulta previa.
type SessionUseCase struct {
	sessionRepo   repository.SessionRepository
	registerRepo  repository.CashRegisterRepository
	userRepo      repository.UserRepository
	log           *logger.Logger
	diffThreshold decimal.Decimal // diferencia de arqueo que dispara alerta
}

// NewSessionUseCase construye el caso de uso. diffThreshold es el monto de
// diferencia de caja a partir del cual el cierre queda alertado (ej. 50).
func NewSessionUseCase(
	sessionRepo repository.SessionRepository,
	registerRepo repository.CashRegisterRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
	diffThreshold decimal.Decimal,
) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo:   sessionRepo,
		registerRepo:  registerRepo,
		userRepo:      userRepo,
		log:           log,
		diffThreshold: diffThreshold,
	}
}

// OpenSessionInput entrada para abrir sesión.
type OpenSessionInput struct {
	CashRegisterID string
	UserID         string
	OpeningCash    decimal.Decimal
}

// OpenSession abre el turno del cajero sobre la caja con el fondo inicial
// contado. Una caja con sesión abierta o inactiva rechaza la apertura.
func (uc *SessionUseCase) OpenSession(ctx context.Context, in OpenSessionInput) (*entity.CashSession, error) {
	if in.CashRegisterID == "" || in.UserID == "" || in.OpeningCash.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	register, err := uc.registerRepo.GetByID(in.CashRegisterID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, domain.ErrNotFound
	}
	if !register.Active {
		return nil, domain.ErrRegisterInactive
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrNotFound
	}

	open, err := uc.sessionRepo.FindOpenByRegister(in.CashRegisterID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrSessionAlreadyOpen
	}

	session := &entity.CashSession{
		ID:             uuid.New().String(),
		CashRegisterID: in.CashRegisterID,
		UserID:         in.UserID,
		OpenedAt:       time.Now(),
		OpeningCash:    in.OpeningCash,
		Status:         entity.SessionStatusOpen,
	}
	// La carrera entre dos aperturas la decide el índice único parcial.
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", session.ID).
		Str("register_id", in.CashRegisterID).
		Str("user_id", in.UserID).
		Str("opening_cash", in.OpeningCash.String()).
		Msg("sesión de caja abierta")
	return session, nil
}

// CloseSessionInput entrada del arqueo de cierre.
type CloseSessionInput struct {
	SessionID  string
	UserID     string
	ActualCash decimal.Decimal
	Notes      string
}

// CloseSession ejecuta el arqueo: efectivo esperado = fondo inicial + pagos en
// efectivo de ventas COMPLETED; la diferencia contra lo contado queda
// registrada siempre y alertada cuando excede el umbral.
func (uc *SessionUseCase) CloseSession(ctx context.Context, in CloseSessionInput) (*entity.CashSession, error) {
	if in.SessionID == "" || in.ActualCash.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetByID(in.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionClosed
	}

	cashTotal, err := uc.sessionRepo.SumPaymentsByMethod(session.ID, entity.PaymentMethodCash)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.Status = entity.SessionStatusClosed
	session.ClosedAt = &now
	session.ExpectedCash = session.OpeningCash.Add(cashTotal)
	session.ActualCash = in.ActualCash
	session.CashDifference = in.ActualCash.Sub(session.ExpectedCash)
	session.Notes = in.Notes
	if session.CashDifference.Abs().GreaterThan(uc.diffThreshold) {
		note := fmt.Sprintf("diferencia de caja %s excede umbral %s", session.CashDifference, uc.diffThreshold)
		if session.Notes != "" {
			session.Notes += "; "
		}
		session.Notes += note
		uc.log.Warn().
			Str("session_id", session.ID).
			Str("register_id", session.CashRegisterID).
			Str("expected", session.ExpectedCash.String()).
			Str("actual", in.ActualCash.String()).
			Str("difference", session.CashDifference.String()).
			Msg("arqueo con diferencia sobre el umbral")
	}

	if err := uc.sessionRepo.Update(session); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", session.ID).
		Str("difference", session.CashDifference.String()).
		Msg("sesión de caja cerrada")
	return session, nil
}

// GetSession devuelve la sesión por id.
func (uc *SessionUseCase) GetSession(ctx context.Context, id string) (*entity.CashSession, error) {
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}
