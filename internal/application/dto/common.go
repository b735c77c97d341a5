package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Clinica-api/internal/domain"
)

// DateLayout formato de fechas en query params y cuerpos (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio genérico de listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// NewList construye un ListResponse; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Items: items}
}

// PeriodDTO rango de fechas de un reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ParseDate interpreta s como YYYY-MM-DD. Devuelve nil si s está vacío.
func ParseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, domain.Validation(fmt.Sprintf("%s: formato de fecha inválido, use YYYY-MM-DD", field))
	}
	return &t, nil
}

// FormatDate formatea t como YYYY-MM-DD ("" si es nil).
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
