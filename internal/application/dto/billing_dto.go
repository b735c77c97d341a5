package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest body para POST /api/treatments/:id/payments.
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`       // defecto cash
	PaymentDate string          `json:"payment_date,omitempty"` // YYYY-MM-DD, defecto hoy
	Notes       string          `json:"notes,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID          string          `json:"id"`
	TreatmentID string          `json:"treatment_id"`
	PatientID   string          `json:"patient_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ApplyPaymentResponse resultado de un abono: el pago, el tratamiento actualizado y el excedente no aplicado.
type ApplyPaymentResponse struct {
	Payment   PaymentResponse   `json:"payment"`
	Treatment TreatmentResponse `json:"treatment"`
	Change    decimal.Decimal   `json:"change"`
}

// PaymentFilter filtros de GET /api/payments.
type PaymentFilter struct {
	PatientID string `query:"patient_id"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}
