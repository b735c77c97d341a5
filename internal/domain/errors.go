package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyPaid       = errors.New("el tratamiento ya está pagado")
	ErrBackend           = errors.New("error del almacenamiento")
)

// detailError conserva el sentinel (errors.Is) y agrega un mensaje para el usuario.
type detailError struct {
	kind error
	msg  string
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.kind }

// Validation devuelve un ErrInvalidInput con el detalle del campo rechazado.
func Validation(msg string) error {
	return &detailError{kind: ErrInvalidInput, msg: msg}
}

// NotFound devuelve un ErrNotFound indicando qué recurso falta.
func NotFound(what string) error {
	return &detailError{kind: ErrNotFound, msg: what + " no encontrado"}
}

// Conflict devuelve un ErrConflict con el motivo.
func Conflict(msg string) error {
	return &detailError{kind: ErrConflict, msg: msg}
}

// Backend envuelve un fallo de escritura/lectura del almacenamiento.
// errors.Is funciona tanto con ErrBackend como con la causa original.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrBackend, err)
}

// IsDomainError indica si err ya pertenece a la taxonomía del dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden,
		ErrConflict, ErrInsufficientStock, ErrAlreadyPaid, ErrBackend,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
