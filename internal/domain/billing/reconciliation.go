// Package billing contiene la conciliación entre el costo de los tratamientos y los pagos recibidos.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// Tolerance es el margen (0.01) bajo el cual un saldo se considera saldado.
var Tolerance = decimal.NewFromFloat(0.01)

// MedicationCost = quantity * unitCost (unitCost es la foto del costo al recetar).
func MedicationCost(quantity int64, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(quantity))
}

// ComputeTotalCost suma el costo de medicamentos y servicios.
// Falla con ErrInvalidInput si el tratamiento no tiene ninguna línea.
func ComputeTotalCost(meds []entity.TreatmentMedication, services []entity.TreatmentService) (decimal.Decimal, error) {
	if len(meds) == 0 && len(services) == 0 {
		return decimal.Zero, domain.Validation("el tratamiento requiere al menos un medicamento o un servicio")
	}
	total := decimal.Zero
	for _, m := range meds {
		total = total.Add(m.TotalCost)
	}
	for _, s := range services {
		total = total.Add(s.Cost)
	}
	return total, nil
}

// ApplyPayment suma amount a AmountPaid con tope en TotalCost y actualiza PaymentStatus.
// Devuelve el monto efectivamente aplicado; el excedente (amount - applied) no se registra.
func ApplyPayment(t *entity.Treatment, amount decimal.Decimal) (applied decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.Validation("el monto del pago debe ser mayor que cero")
	}
	if t.PaymentStatus == entity.PaymentStatusPaid || t.AmountPaid.GreaterThanOrEqual(t.TotalCost) {
		return decimal.Zero, domain.ErrAlreadyPaid
	}
	newPaid := decimal.Min(t.AmountPaid.Add(amount), t.TotalCost)
	applied = newPaid.Sub(t.AmountPaid)
	t.AmountPaid = newPaid
	t.PaymentStatus = TreatmentStatus(t.TotalCost, newPaid)
	return applied, nil
}

// TreatmentStatus clasifica un tratamiento: paid si paid >= total, pending si no hay abonos, partial en otro caso.
func TreatmentStatus(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	case paid.IsZero():
		return entity.PaymentStatusPending
	default:
		return entity.PaymentStatusPartial
	}
}

// TotalOwed = Σ (TotalCost - AmountPaid). Nunca negativo porque AmountPaid <= TotalCost.
func TotalOwed(treatments []*entity.Treatment) decimal.Decimal {
	owed := decimal.Zero
	for _, t := range treatments {
		owed = owed.Add(t.Outstanding())
	}
	return owed
}

// TotalPaid = Σ AmountPaid.
func TotalPaid(treatments []*entity.Treatment) decimal.Decimal {
	paid := decimal.Zero
	for _, t := range treatments {
		paid = paid.Add(t.AmountPaid)
	}
	return paid
}

// TotalCost = Σ TotalCost.
func TotalCost(treatments []*entity.Treatment) decimal.Decimal {
	total := decimal.Zero
	for _, t := range treatments {
		total = total.Add(t.TotalCost)
	}
	return total
}

// Balance es el resumen de cuenta de un paciente.
type Balance struct {
	TotalCost      decimal.Decimal
	TotalPaid      decimal.Decimal
	TotalOwed      decimal.Decimal
	Status         string
	HasOutstanding bool
}

// PatientBalance deriva el estado de cuenta a partir de los tratamientos del paciente.
// Estado: pending si no ha pagado nada, partial si pagó menos del total, paid en otro caso.
// Sin nada facturado (total 0) el paciente está al día: paid.
func PatientBalance(treatments []*entity.Treatment) Balance {
	total := TotalCost(treatments)
	paid := TotalPaid(treatments)
	owed := TotalOwed(treatments)
	status := entity.PaymentStatusPaid
	switch {
	case paid.IsZero() && total.IsPositive():
		status = entity.PaymentStatusPending
	case paid.LessThan(total):
		status = entity.PaymentStatusPartial
	}
	return Balance{
		TotalCost:      total,
		TotalPaid:      paid,
		TotalOwed:      owed,
		Status:         status,
		HasOutstanding: owed.GreaterThan(Tolerance),
	}
}
