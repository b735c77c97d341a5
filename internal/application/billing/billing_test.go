package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/infrastructure/memory"
)

const (
	clinicID = "clinica-1"
	userID   = "usuario-1"
)

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	cache    *state.Cache
	patients *usecase.PatientUseCase
	create   *treatment.CreateTreatmentUseCase
	payments *billing.PaymentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	cache := state.New(repos, 0, log)
	ledger := inventory.NewRegisterTransactionUseCase(store, repos.Items, repos.Transactions, cache, log)
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		cache:    cache,
		patients: usecase.NewPatientUseCase(repos.Patients, repos.Treatments, cache),
		create:   treatment.NewCreateTreatmentUseCase(store, ledger, repos.Patients, cache, true, log),
		payments: billing.NewPaymentUseCase(store, repos.Patients, cache, log),
	}
}

// treatment crea un paciente y un tratamiento de un solo servicio con el costo indicado.
func (f *fixture) treatment(t *testing.T, cost string) (patientID, treatmentID string) {
	t.Helper()
	p, err := f.patients.Create(f.ctx, clinicID, dto.CreatePatientRequest{
		Name: "John Banda", Age: 52, Gender: entity.GenderMale, Residence: "Ndola",
	})
	require.NoError(t, err)
	tr, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: p.ID,
		Diagnosis: "Hipertensión",
		Services:  []dto.ServiceLineRequest{{Name: "Consulta", Cost: decimal.RequireFromString(cost)}},
	})
	require.NoError(t, err)
	return p.ID, tr.ID
}

func amount(s string) dto.ApplyPaymentRequest {
	return dto.ApplyPaymentRequest{Amount: decimal.RequireFromString(s)}
}

// ── ApplyPayment ─────────────────────────────────────────────────────────────

func TestApplyPayment_AbonoParcialYTotal(t *testing.T) {
	f := newFixture(t)
	patientID, treatmentID := f.treatment(t, "100")

	resp, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("40"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, resp.Treatment.PaymentStatus)
	assert.True(t, resp.Treatment.AmountPaid.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.Treatment.Outstanding.Equal(decimal.NewFromInt(60)))
	assert.True(t, resp.Change.IsZero())
	assert.Equal(t, entity.PaymentMethodCash, resp.Payment.Method)
	assert.Equal(t, entity.PaymentCompleted, resp.Payment.Status)
	assert.Equal(t, "Pago de tratamiento: Hipertensión", resp.Payment.Notes)

	resp, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("60"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Treatment.PaymentStatus)
	assert.True(t, resp.Treatment.Outstanding.IsZero())

	bal, err := f.patients.Balance(f.ctx, clinicID, patientID)
	require.NoError(t, err)
	assert.True(t, bal.TotalOwed.IsZero())
	assert.False(t, bal.HasOutstandingBalance)
	assert.Equal(t, entity.PaymentStatusPaid, bal.Status)

	list, err := f.payments.ListByTreatment(f.ctx, clinicID, treatmentID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestApplyPayment_ExcedenteSeDevuelveComoCambio(t *testing.T) {
	f := newFixture(t)
	_, treatmentID := f.treatment(t, "75.50")

	resp, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("100"))
	require.NoError(t, err)
	assert.True(t, resp.Payment.Amount.Equal(decimal.RequireFromString("75.50")), "se registra el monto aplicado")
	assert.True(t, resp.Change.Equal(decimal.RequireFromString("24.50")))
	assert.True(t, resp.Treatment.AmountPaid.Equal(resp.Treatment.TotalCost))
	assert.Equal(t, entity.PaymentStatusPaid, resp.Treatment.PaymentStatus)
}

func TestApplyPayment_Rechazos(t *testing.T) {
	f := newFixture(t)
	_, treatmentID := f.treatment(t, "20")

	_, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("0"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("-5"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req := amount("5")
	req.Method = "cheque"
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, "no-existe", amount("5"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.payments.ApplyPayment(f.ctx, "otra-clinica", userID, treatmentID, amount("5"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("20"))
	require.NoError(t, err)
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("1"))
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestApplyPayment_FalloDelBackendNoTocaCacheNiTratamiento(t *testing.T) {
	f := newFixture(t)
	patientID, treatmentID := f.treatment(t, "50")

	// Cargar la caché antes del fallo
	_, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)

	f.store.FailOn("payments.create", errors.New("timeout de red"))
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("30"))
	require.ErrorIs(t, err, domain.ErrBackend)

	snap, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)
	require.Len(t, snap.Treatments, 1)
	assert.True(t, snap.Treatments[0].AmountPaid.IsZero())
	assert.Equal(t, entity.PaymentStatusPending, snap.Treatments[0].PaymentStatus)
	assert.Empty(t, snap.Payments)

	bal, err := f.patients.Balance(f.ctx, clinicID, patientID)
	require.NoError(t, err)
	assert.True(t, bal.TotalOwed.Equal(decimal.NewFromInt(50)), "la actualización del tratamiento debe revertirse")

	// El siguiente intento funciona
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("30"))
	require.NoError(t, err)
}

func TestApplyPayment_ConcurrentesNoPierdenAbonos(t *testing.T) {
	f := newFixture(t)
	_, treatmentID := f.treatment(t, "100")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, amount("10"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := f.payments.ListByTreatment(f.ctx, clinicID, treatmentID)
	require.NoError(t, err)
	require.Len(t, list, n)
	sum := decimal.Zero
	for _, p := range list {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(100)))

	snap, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)
	assert.True(t, snap.Treatments[0].AmountPaid.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, entity.PaymentStatusPaid, snap.Treatments[0].PaymentStatus)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestListPayments_FiltraPorPacienteYPeriodo(t *testing.T) {
	f := newFixture(t)
	patientID, treatmentID := f.treatment(t, "300")

	for _, date := range []string{"2025-01-05", "2025-01-20", "2025-02-03"} {
		req := amount("50")
		req.PaymentDate = date
		_, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, req)
		require.NoError(t, err)
	}

	all, err := f.payments.List(f.ctx, clinicID, dto.PaymentFilter{PatientID: patientID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-02-03", all[0].PaymentDate, "más reciente primero")

	jan, err := f.payments.List(f.ctx, clinicID, dto.PaymentFilter{StartDate: "2025-01-01", EndDate: "2025-01-20"})
	require.NoError(t, err)
	assert.Len(t, jan, 2, "end_date es inclusivo")

	none, err := f.payments.List(f.ctx, clinicID, dto.PaymentFilter{PatientID: "otro"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.payments.List(f.ctx, clinicID, dto.PaymentFilter{StartDate: "enero"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
