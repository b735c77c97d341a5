package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pendingTreatment(total string) *entity.Treatment {
	return &entity.Treatment{
		TotalCost:     dec(total),
		AmountPaid:    decimal.Zero,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo del tratamiento
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: 10 unidades a 0.5 + servicio de 50 → 55.00.
func TestComputeTotalCost_MedicamentoYServicio(t *testing.T) {
	meds := []entity.TreatmentMedication{{
		Quantity:  10,
		UnitCost:  dec("0.5"),
		TotalCost: billing.MedicationCost(10, dec("0.5")),
	}}
	services := []entity.TreatmentService{{Name: "Consulta", Cost: dec("50")}}

	total, err := billing.ComputeTotalCost(meds, services)
	require.NoError(t, err)
	assert.True(t, dec("55.00").Equal(total), "total = %s", total)
}

func TestComputeTotalCost_SinLineas_Validacion(t *testing.T) {
	_, err := billing.ComputeTotalCost(nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: total 110.20; abono 60 → partial; abono 60.20 → paid con tope.
func TestApplyPayment_ParcialLuegoPagado(t *testing.T) {
	tr := pendingTreatment("110.20")

	applied, err := billing.ApplyPayment(tr, dec("60"))
	require.NoError(t, err)
	assert.True(t, dec("60").Equal(tr.AmountPaid))
	assert.True(t, dec("60").Equal(applied))
	assert.Equal(t, entity.PaymentStatusPartial, tr.PaymentStatus)

	applied, err = billing.ApplyPayment(tr, dec("60.20"))
	require.NoError(t, err)
	assert.True(t, dec("110.20").Equal(tr.AmountPaid))
	assert.True(t, dec("50.20").Equal(applied))
	assert.Equal(t, entity.PaymentStatusPaid, tr.PaymentStatus)
}

func TestApplyPayment_Sobrepago_TopeEnTotal(t *testing.T) {
	tr := pendingTreatment("40")

	applied, err := billing.ApplyPayment(tr, dec("100"))
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(tr.AmountPaid), "nunca mayor que el total")
	assert.True(t, dec("40").Equal(applied))
	assert.Equal(t, entity.PaymentStatusPaid, tr.PaymentStatus)
}

func TestApplyPayment_MontoNoPositivo_Validacion(t *testing.T) {
	tr := pendingTreatment("40")
	for _, amt := range []string{"0", "-5"} {
		_, err := billing.ApplyPayment(tr, dec(amt))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.True(t, tr.AmountPaid.IsZero())
	assert.Equal(t, entity.PaymentStatusPending, tr.PaymentStatus)
}

func TestApplyPayment_YaPagado_Rechazado(t *testing.T) {
	tr := pendingTreatment("10")
	_, err := billing.ApplyPayment(tr, dec("10"))
	require.NoError(t, err)

	_, err = billing.ApplyPayment(tr, dec("1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.True(t, dec("10").Equal(tr.AmountPaid))
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldos del paciente
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: dos tratamientos de 60 y 110.20 sin pagos → debe 170.20.
func TestTotalOwed_DosTratamientos(t *testing.T) {
	list := []*entity.Treatment{pendingTreatment("60"), pendingTreatment("110.20")}

	assert.True(t, dec("170.20").Equal(billing.TotalOwed(list)))
	assert.True(t, billing.TotalPaid(list).IsZero())

	bal := billing.PatientBalance(list)
	assert.Equal(t, entity.PaymentStatusPending, bal.Status)
	assert.True(t, bal.HasOutstanding)
}

func TestPatientBalance_Estados(t *testing.T) {
	a := pendingTreatment("60")
	b := pendingTreatment("40")
	list := []*entity.Treatment{a, b}

	_, err := billing.ApplyPayment(a, dec("60"))
	require.NoError(t, err)
	bal := billing.PatientBalance(list)
	assert.Equal(t, entity.PaymentStatusPartial, bal.Status)
	assert.True(t, dec("40").Equal(bal.TotalOwed))

	_, err = billing.ApplyPayment(b, dec("40"))
	require.NoError(t, err)
	bal = billing.PatientBalance(list)
	assert.Equal(t, entity.PaymentStatusPaid, bal.Status)
	assert.False(t, bal.HasOutstanding)
	assert.True(t, bal.TotalOwed.IsZero())
}

// Sin nada facturado no hay deuda: paid, igual que un tratamiento de costo cero.
func TestPatientBalance_SinTratamientos(t *testing.T) {
	bal := billing.PatientBalance(nil)
	assert.True(t, bal.TotalOwed.IsZero())
	assert.False(t, bal.HasOutstanding)
	assert.Equal(t, entity.PaymentStatusPaid, bal.Status)
}

// Propiedad: la deuda nunca es negativa, sin importar la secuencia de abonos.
func TestTotalOwed_NuncaNegativo(t *testing.T) {
	amounts := []string{"0.01", "3.33", "25", "99.99", "1000"}
	for _, total := range []string{"0.50", "10", "110.20", "999.99"} {
		tr := pendingTreatment(total)
		for _, a := range amounts {
			_, _ = billing.ApplyPayment(tr, dec(a))
			assert.False(t, billing.TotalOwed([]*entity.Treatment{tr}).IsNegative())
			assert.True(t, tr.AmountPaid.LessThanOrEqual(tr.TotalCost))
		}
	}
}

func TestPatientBalance_SoloTratamientosDeCostoCero(t *testing.T) {
	free := &entity.Treatment{TotalCost: decimal.Zero, AmountPaid: decimal.Zero}
	free.PaymentStatus = billing.TreatmentStatus(free.TotalCost, free.AmountPaid)
	assert.Equal(t, entity.PaymentStatusPaid, free.PaymentStatus)

	bal := billing.PatientBalance([]*entity.Treatment{free})
	assert.Equal(t, entity.PaymentStatusPaid, bal.Status)

	// Con algo facturado y nada pagado vuelve a regir pending
	bal = billing.PatientBalance([]*entity.Treatment{free, pendingTreatment("25")})
	assert.Equal(t, entity.PaymentStatusPending, bal.Status)
	assert.True(t, bal.HasOutstanding)
}

func TestApplyPayment_TratamientoDeCostoCero(t *testing.T) {
	free := &entity.Treatment{TotalCost: decimal.Zero, AmountPaid: decimal.Zero, PaymentStatus: entity.PaymentStatusPaid}
	_, err := billing.ApplyPayment(free, dec("5"))
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.True(t, free.AmountPaid.IsZero())
}
