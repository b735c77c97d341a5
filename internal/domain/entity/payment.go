package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentMethodCash      = "cash"
	PaymentMethodCard      = "card"
	PaymentMethodMobile    = "mobile"
	PaymentMethodInsurance = "insurance"
	PaymentMethodOther     = "other"
)

// Estados de un pago.
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// ValidPaymentMethod indica si el método es admitido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile, PaymentMethodInsurance, PaymentMethodOther:
		return true
	}
	return false
}

// Payment es un abono (append-only) a un tratamiento.
type Payment struct {
	ID          string
	ClinicID    string
	TreatmentID string
	PatientID   string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Status      string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}
