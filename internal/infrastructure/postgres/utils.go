package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el repositorio traduce a errores de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

// isForeignKeyViolation: p. ej. borrar un paciente que aún tiene tratamientos.
func isForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }
