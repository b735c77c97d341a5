package treatment_test

import (
	"context"
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
	ctx        context.Context
	store      *memory.Store
	cache      *state.Cache
	ledger     *inventory.RegisterTransactionUseCase
	items      *inventory.ItemUseCase
	patients   *usecase.PatientUseCase
	create     *treatment.CreateTreatmentUseCase
	treatments *treatment.TreatmentUseCase
	payments   *billing.PaymentUseCase
}

func newFixture(t *testing.T, deductStock bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	cache := state.New(repos, 0, log)
	ledger := inventory.NewRegisterTransactionUseCase(store, repos.Items, repos.Transactions, cache, log)
	return &fixture{
		ctx:        context.Background(),
		store:      store,
		cache:      cache,
		ledger:     ledger,
		items:      inventory.NewItemUseCase(store, repos.Items, ledger, cache, 30),
		patients:   usecase.NewPatientUseCase(repos.Patients, repos.Treatments, cache),
		create:     treatment.NewCreateTreatmentUseCase(store, ledger, repos.Patients, cache, deductStock, log),
		treatments: treatment.NewTreatmentUseCase(store, ledger, repos.Treatments, repos.Patients, cache, log),
		payments:   billing.NewPaymentUseCase(store, repos.Patients, cache, log),
	}
}

func (f *fixture) patient(t *testing.T) string {
	t.Helper()
	p, err := f.patients.Create(f.ctx, clinicID, dto.CreatePatientRequest{
		Name: "Ana Phiri", Age: 34, Gender: entity.GenderFemale, Residence: "Lusaka",
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) item(t *testing.T, name string, stock int64, unitCost string) string {
	t.Helper()
	it, err := f.items.Create(f.ctx, clinicID, userID, dto.CreateItemRequest{
		Name:         name,
		Category:     entity.CategoryMedication,
		UnitCost:     decimal.RequireFromString(unitCost),
		ReorderLevel: 10,
		InitialStock: stock,
	})
	require.NoError(t, err)
	return it.ID
}

func (f *fixture) stock(t *testing.T, itemID string) int64 {
	t.Helper()
	it, err := f.items.GetByID(f.ctx, clinicID, itemID)
	require.NoError(t, err)
	return it.CurrentStock
}

// ── CreateTreatment ──────────────────────────────────────────────────────────

func TestCreateTreatment_DescuentaInventarioYCalculaTotal(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	itemID := f.item(t, "Amoxicilina 500mg", 100, "2.50")

	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID:   patientID,
		Diagnosis:   "Faringitis",
		Medications: []dto.MedicationLineRequest{{InventoryItemID: itemID, Quantity: 20, Dosage: "1 cada 8h"}},
		Services:    []dto.ServiceLineRequest{{Name: "Consulta", Cost: decimal.NewFromInt(50)}},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(100)), "20 x 2.50 + 50")
	assert.True(t, resp.AmountPaid.IsZero())
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, "Ana Phiri", resp.PatientName)
	require.Len(t, resp.Medications, 1)
	assert.Equal(t, "Amoxicilina 500mg", resp.Medications[0].Name)
	assert.True(t, resp.Medications[0].UnitCost.Equal(decimal.RequireFromString("2.50")))

	assert.Equal(t, int64(80), f.stock(t, itemID))

	history, err := f.ledger.GetHistory(f.ctx, clinicID, itemID)
	require.NoError(t, err)
	require.Len(t, history, 2, "stock inicial + salida del tratamiento")
	last := history[0]
	assert.Equal(t, entity.TransactionTypeDeduction, last.Type)
	assert.Equal(t, entity.ReferenceTypeTreatment, last.ReferenceType)
	assert.Equal(t, resp.ID, last.ReferenceID)
	assert.Equal(t, int64(80), last.Balance)

	// La caché refleja el mismo saldo
	snap, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(80), snap.Items[0].CurrentStock)
	require.Len(t, snap.Treatments, 1)
}

func TestCreateTreatment_MismoArticuloEnDosLineas(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	itemID := f.item(t, "Ibuprofeno 400mg", 100, "1.00")

	_, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Esguince",
		Medications: []dto.MedicationLineRequest{
			{InventoryItemID: itemID, Quantity: 10, Dosage: "1 cada 8h"},
			{InventoryItemID: itemID, Quantity: 5, Dosage: "1 al dormir"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(85), f.stock(t, itemID))

	history, err := f.ledger.GetHistory(f.ctx, clinicID, itemID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Las dos salidas comparten created_at; la más reciente es la segunda línea.
	assert.True(t, history[0].CreatedAt.Equal(history[1].CreatedAt))
	assert.Equal(t, int64(85), history[0].Balance)
	assert.Equal(t, int64(90), history[1].Balance)
	assert.Greater(t, history[0].Seq, history[1].Seq)

	snap, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Transactions)
	assert.Equal(t, int64(85), snap.Transactions[0].Balance)
	assert.Equal(t, int64(85), snap.Items[0].CurrentStock)
}

func TestCreateTreatment_CostoCeroNaceSaldado(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)

	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Control post operatorio",
		Services:  []dto.ServiceLineRequest{{Name: "Control gratuito", Cost: decimal.Zero}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalCost.IsZero())
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)

	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, resp.ID, dto.ApplyPaymentRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	bal, err := f.patients.Balance(f.ctx, clinicID, patientID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, bal.Status)
	assert.False(t, bal.HasOutstandingBalance)
}

func TestCreateTreatment_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	okID := f.item(t, "Paracetamol", 50, "1.00")
	lowID := f.item(t, "Ibuprofeno", 3, "1.20")

	_, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Fiebre",
		Medications: []dto.MedicationLineRequest{
			{InventoryItemID: okID, Quantity: 10},
			{InventoryItemID: lowID, Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(50), f.stock(t, okID), "la primera salida debe revertirse")
	assert.Equal(t, int64(3), f.stock(t, lowID))

	list, err := f.treatments.ListByPatient(f.ctx, clinicID, patientID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateTreatment_SinDescuentoAutomatico(t *testing.T) {
	f := newFixture(t, false)
	patientID := f.patient(t)
	itemID := f.item(t, "Vitamina C", 40, "0.50")

	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID:   patientID,
		Diagnosis:   "Control",
		Medications: []dto.MedicationLineRequest{{InventoryItemID: itemID, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(40), f.stock(t, itemID))
}

func TestCreateTreatment_Validaciones(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	itemID := f.item(t, "Gasas", 10, "0.10")

	cases := []struct {
		name string
		req  dto.CreateTreatmentRequest
		want error
	}{
		{"sin diagnóstico", dto.CreateTreatmentRequest{PatientID: patientID, Services: []dto.ServiceLineRequest{{Name: "X", Cost: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateTreatmentRequest{PatientID: patientID, Diagnosis: "D"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateTreatmentRequest{PatientID: patientID, Diagnosis: "D", Medications: []dto.MedicationLineRequest{{InventoryItemID: itemID}}}, domain.ErrInvalidInput},
		{"fecha inválida", dto.CreateTreatmentRequest{PatientID: patientID, Diagnosis: "D", Date: "15/01/2025", Services: []dto.ServiceLineRequest{{Name: "X", Cost: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"paciente inexistente", dto.CreateTreatmentRequest{PatientID: "no-existe", Diagnosis: "D", Services: []dto.ServiceLineRequest{{Name: "X", Cost: decimal.NewFromInt(1)}}}, domain.ErrNotFound},
		{"artículo inexistente", dto.CreateTreatmentRequest{PatientID: patientID, Diagnosis: "D", Medications: []dto.MedicationLineRequest{{InventoryItemID: "no-existe", Quantity: 1}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.CreateTreatment(f.ctx, clinicID, userID, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(10), f.stock(t, itemID))
}

func TestCreateTreatment_CostoCongeladoAlRecetar(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	itemID := f.item(t, "Insulina", 20, "10.00")

	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID:   patientID,
		Diagnosis:   "Diabetes",
		Medications: []dto.MedicationLineRequest{{InventoryItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	newCost := decimal.NewFromInt(15)
	_, err = f.items.Update(f.ctx, clinicID, itemID, dto.UpdateItemRequest{UnitCost: &newCost})
	require.NoError(t, err)

	got, err := f.treatments.GetByID(f.ctx, clinicID, resp.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.Medications[0].UnitCost.Equal(decimal.NewFromInt(10)))
}

// ── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdateTreatment_SoloCamposEditables(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Gripe",
		Date:      "2025-01-10",
		Services:  []dto.ServiceLineRequest{{Name: "Consulta", Cost: decimal.NewFromInt(30)}},
	})
	require.NoError(t, err)

	diag := "Gripe estacional"
	due := "2025-02-10"
	got, err := f.treatments.Update(f.ctx, clinicID, resp.ID, dto.UpdateTreatmentRequest{Diagnosis: &diag, DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "Gripe estacional", got.Diagnosis)
	assert.Equal(t, "2025-01-10", got.Date)
	assert.Equal(t, "2025-02-10", got.DueDate)
	assert.True(t, got.TotalCost.Equal(decimal.NewFromInt(30)))

	empty := "  "
	_, err = f.treatments.Update(f.ctx, clinicID, resp.ID, dto.UpdateTreatmentRequest{Diagnosis: &empty})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteTreatment_DevuelveStock(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	itemID := f.item(t, "Omeprazol", 30, "0.80")

	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID:   patientID,
		Diagnosis:   "Gastritis",
		Medications: []dto.MedicationLineRequest{{InventoryItemID: itemID, Quantity: 14}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(16), f.stock(t, itemID))

	require.NoError(t, f.treatments.Delete(f.ctx, clinicID, userID, resp.ID))
	assert.Equal(t, int64(30), f.stock(t, itemID))

	history, err := f.ledger.GetHistory(f.ctx, clinicID, itemID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.TransactionTypeAddition, history[0].Type)
	assert.Equal(t, resp.ID, history[0].ReferenceID)
	assert.Equal(t, int64(30), history[0].Balance)

	_, err = f.treatments.GetByID(f.ctx, clinicID, resp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	snap, err := f.cache.Snapshot(f.ctx, clinicID)
	require.NoError(t, err)
	assert.Empty(t, snap.Treatments)
	assert.Equal(t, int64(30), snap.Items[0].CurrentStock)
}

func TestDeleteTreatment_ConPagosEsConflicto(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Chequeo",
		Services:  []dto.ServiceLineRequest{{Name: "Consulta", Cost: decimal.NewFromInt(40)}},
	})
	require.NoError(t, err)
	_, err = f.payments.ApplyPayment(f.ctx, clinicID, userID, resp.ID, dto.ApplyPaymentRequest{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	err = f.treatments.Delete(f.ctx, clinicID, userID, resp.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.treatments.GetByID(f.ctx, clinicID, resp.ID)
	require.NoError(t, err)
}

func TestTreatment_OtraClinicaNoEncontrado(t *testing.T) {
	f := newFixture(t, true)
	patientID := f.patient(t)
	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, dto.CreateTreatmentRequest{
		PatientID: patientID,
		Diagnosis: "Chequeo",
		Services:  []dto.ServiceLineRequest{{Name: "Consulta", Cost: decimal.NewFromInt(40)}},
	})
	require.NoError(t, err)

	_, err = f.treatments.GetByID(f.ctx, "otra-clinica", resp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	err = f.treatments.Delete(f.ctx, "otra-clinica", userID, resp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
