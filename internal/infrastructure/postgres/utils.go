package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/restoqly/restopos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueViolationError mapea la violación 23505 al error de dominio según el
// constraint que disparó. Los nombres vienen del esquema:
//   - lots_internal_code_key: código interno global
//   - lots_product_warehouse_number_key: (producto, bodega, número de lote)
//   - cash_sessions_one_open_per_register: índice único parcial de sesión OPEN
func uniqueViolationError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "lots_internal_code_key":
		return domain.ErrDuplicateInternalCode
	case "lots_product_warehouse_number_key":
		return domain.ErrDuplicateLot
	case "cash_sessions_one_open_per_register":
		return domain.ErrSessionAlreadyOpen
	case "users_email_key":
		return domain.ErrEmailAlreadyExists
	}
	return err
}
