package analytics_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/internal/application/analytics"
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
	ctx       context.Context
	items     *inventory.ItemUseCase
	patients  *usecase.PatientUseCase
	create    *treatment.CreateTreatmentUseCase
	payments  *billing.PaymentUseCase
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	cache := state.New(repos, 0, log)
	ledger := inventory.NewRegisterTransactionUseCase(store, repos.Items, repos.Transactions, cache, log)
	return &fixture{
		ctx:       context.Background(),
		items:     inventory.NewItemUseCase(store, repos.Items, ledger, cache, 30),
		patients:  usecase.NewPatientUseCase(repos.Patients, repos.Treatments, cache),
		create:    treatment.NewCreateTreatmentUseCase(store, ledger, repos.Patients, cache, true, log),
		payments:  billing.NewPaymentUseCase(store, repos.Patients, cache, log),
		dashboard: analytics.NewDashboardUseCase(cache),
		reports:   analytics.NewReportUseCase(cache),
	}
}

func (f *fixture) patient(t *testing.T, name, gender string, age int) string {
	t.Helper()
	p, err := f.patients.Create(f.ctx, clinicID, dto.CreatePatientRequest{Name: name, Age: age, Gender: gender, Residence: "Lusaka"})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) item(t *testing.T, name, category string, stock, reorder int64, cost string) string {
	t.Helper()
	it, err := f.items.Create(f.ctx, clinicID, userID, dto.CreateItemRequest{
		Name: name, Category: category, UnitCost: decimal.RequireFromString(cost), ReorderLevel: reorder, InitialStock: stock,
	})
	require.NoError(t, err)
	return it.ID
}

func (f *fixture) treatment(t *testing.T, req dto.CreateTreatmentRequest) string {
	t.Helper()
	req.Diagnosis = "Control"
	resp, err := f.create.CreateTreatment(f.ctx, clinicID, userID, req)
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) pay(t *testing.T, treatmentID, amount, date string) {
	t.Helper()
	_, err := f.payments.ApplyPayment(f.ctx, clinicID, userID, treatmentID, dto.ApplyPaymentRequest{
		Amount: decimal.RequireFromString(amount), PaymentDate: date,
	})
	require.NoError(t, err)
}

func service(name, cost string) dto.ServiceLineRequest {
	return dto.ServiceLineRequest{Name: name, Cost: decimal.RequireFromString(cost)}
}

// seedMarch crea dos pacientes con tratamientos en marzo y uno en abril de 2025.
func (f *fixture) seedMarch(t *testing.T) {
	t.Helper()
	ana := f.patient(t, "Ana Phiri", entity.GenderFemale, 34)
	john := f.patient(t, "John Banda", entity.GenderMale, 70)
	amox := f.item(t, "Amoxicilina", entity.CategoryMedication, 100, 10, "2.50")

	t1 := f.treatment(t, dto.CreateTreatmentRequest{
		PatientID:   ana,
		Date:        "2025-03-01",
		Medications: []dto.MedicationLineRequest{{InventoryItemID: amox, Quantity: 2}},
		Services:    []dto.ServiceLineRequest{service("Consulta", "50")},
	})
	t2 := f.treatment(t, dto.CreateTreatmentRequest{
		PatientID: john,
		Date:      "2025-03-03",
		Services:  []dto.ServiceLineRequest{service("Consulta", "50"), service("Laboratorio", "80")},
	})
	t3 := f.treatment(t, dto.CreateTreatmentRequest{
		PatientID: ana,
		Date:      "2025-04-10",
		Services:  []dto.ServiceLineRequest{service("Consulta", "50")},
	})
	f.pay(t, t1, "30", "2025-03-02")
	f.pay(t, t2, "100", "2025-03-03")
	f.pay(t, t3, "10", "2025-04-10")
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	f := newFixture(t)
	today := time.Now()
	ana := f.patient(t, "Ana Phiri", entity.GenderFemale, 34)
	john := f.patient(t, "John Banda", entity.GenderMale, 52)
	f.item(t, "Gasas", entity.CategorySupply, 5, 10, "0.10")
	amox := f.item(t, "Amoxicilina", entity.CategoryMedication, 100, 10, "2.50")

	older := f.treatment(t, dto.CreateTreatmentRequest{
		PatientID: ana,
		Date:      today.AddDate(0, 0, -2).Format(dto.DateLayout),
		Services:  []dto.ServiceLineRequest{service("Consulta", "100")},
	})
	newest := f.treatment(t, dto.CreateTreatmentRequest{
		PatientID:   john,
		Date:        today.Format(dto.DateLayout),
		Medications: []dto.MedicationLineRequest{{InventoryItemID: amox, Quantity: 2}},
	})
	f.pay(t, older, "40", "")

	sum, err := f.dashboard.GetSummary(f.ctx, clinicID)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalPatients)
	assert.Equal(t, 2, sum.TreatmentCount)
	assert.Equal(t, 1, sum.LowStockCount)
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(105)))
	assert.True(t, sum.Collected.Equal(decimal.NewFromInt(40)))
	assert.True(t, sum.Outstanding.Equal(decimal.NewFromInt(65)))

	require.Len(t, sum.RecentTreatments, 2)
	assert.Equal(t, newest, sum.RecentTreatments[0].ID)
	assert.Equal(t, "John Banda", sum.RecentTreatments[0].PatientName)

	require.Len(t, sum.LowStockItems, 1)
	assert.Equal(t, "Gasas", sum.LowStockItems[0].Name)

	require.Len(t, sum.MonthlyRevenue, 6)
	assert.True(t, sum.MonthlyRevenue[5].Revenue.Equal(decimal.NewFromInt(40)))
	assert.NotEmpty(t, sum.DateLabel)
}

func TestDashboard_ClinicaVacia(t *testing.T) {
	f := newFixture(t)
	clock := func() time.Time { return time.Date(2026, time.February, 14, 10, 0, 0, 0, time.Local) }
	sum, err := f.dashboard.WithClock(clock).GetSummary(f.ctx, clinicID)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalPatients)
	assert.True(t, sum.Outstanding.IsZero())
	assert.Empty(t, sum.RecentTreatments)
	assert.Equal(t, "Febrero 2026", sum.DateLabel)
	require.Len(t, sum.MonthlyRevenue, 6)
	assert.Equal(t, "Septiembre 2025", sum.MonthlyRevenue[0].Month)
}

// ── Reportes ────────────────────────────────────────────────────────────────

func TestFinancialReport_Periodo(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	rep, err := f.reports.Financial(f.ctx, clinicID, dto.ReportRequest{StartDate: "2025-03-01", EndDate: "2025-03-03"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", rep.Period.StartDate)
	assert.Equal(t, "2025-03-03", rep.Period.EndDate)
	require.Len(t, rep.DailyRevenue, 3, "un punto por día aunque no haya pagos")
	assert.True(t, rep.DailyRevenue[0].Revenue.IsZero())
	assert.True(t, rep.DailyRevenue[1].Revenue.Equal(decimal.NewFromInt(30)))
	assert.True(t, rep.DailyRevenue[2].Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, rep.TotalRevenue.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, "43.33", rep.AverageDailyRevenue.StringFixed(2))
	assert.True(t, rep.MedicationAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, rep.ServicesAmount.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, 2, rep.ActivePatients)

	require.Len(t, rep.TopServices, 2)
	assert.Equal(t, "Consulta", rep.TopServices[0].Name)
	assert.Equal(t, 2, rep.TopServices[0].Count)
	assert.True(t, rep.TopServices[0].Revenue.Equal(decimal.NewFromInt(100)))
}

func TestFinancialReport_PeriodoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Financial(f.ctx, clinicID, dto.ReportRequest{StartDate: "2025-03-10", EndDate: "2025-03-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.reports.Financial(f.ctx, clinicID, dto.ReportRequest{StartDate: "01/03/2025"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.reports.Financial(f.ctx, clinicID, dto.ReportRequest{StartDate: "2020-01-01", EndDate: "2025-01-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinancialCSV(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	body, filename, err := f.reports.FinancialCSV(f.ctx, clinicID, dto.ReportRequest{StartDate: "2025-03-01", EndDate: "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, "reporte_financiero_2025-03-01_2025-03-03.csv", filename)

	csv := string(body)
	assert.True(t, strings.HasPrefix(csv, "fecha,ingresos\n2025-03-01,0.00\n2025-03-02,30.00\n2025-03-03,100.00\n"))
	assert.Contains(t, csv, "total_ingresos,130.00\n")
	assert.Contains(t, csv, "pacientes_activos,2\n")
}

func TestPatientReport_VisitasNuevasYDeRetorno(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	rep, err := f.reports.Patients(f.ctx, clinicID, dto.ReportRequest{StartDate: "2025-03-01", EndDate: "2025-04-30"})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalPatients)
	assert.Equal(t, 2, rep.ActivePatients)
	assert.Equal(t, []dto.CountDTO{{Label: "male", Count: 1}, {Label: "female", Count: 1}, {Label: "other", Count: 0}}, rep.Gender)
	assert.Equal(t, 1, rep.AgeRanges[1].Count, "19-35")
	assert.Equal(t, 1, rep.AgeRanges[4].Count, "65+")

	require.Len(t, rep.DailyVisits, 61)
	visits := map[string]dto.DailyVisitsDTO{}
	for _, v := range rep.DailyVisits {
		visits[v.Date] = v
	}
	assert.Equal(t, 1, visits["2025-03-01"].New)
	assert.Equal(t, 1, visits["2025-03-03"].New)
	assert.Equal(t, 0, visits["2025-04-10"].New)
	assert.Equal(t, 1, visits["2025-04-10"].Return)

	// En abril la visita de Ana sigue siendo de retorno: su primer tratamiento fue en marzo
	april, err := f.reports.Patients(f.ctx, clinicID, dto.ReportRequest{StartDate: "2025-04-01", EndDate: "2025-04-30"})
	require.NoError(t, err)
	assert.Equal(t, 1, april.ActivePatients)
	total := 0
	for _, v := range april.DailyVisits {
		total += v.New
	}
	assert.Zero(t, total)
}

func TestInventoryReport_PeriodoActual(t *testing.T) {
	f := newFixture(t)
	ana := f.patient(t, "Ana Phiri", entity.GenderFemale, 34)
	amox := f.item(t, "Amoxicilina", entity.CategoryMedication, 100, 10, "2.50")
	f.item(t, "Gasas", entity.CategorySupply, 5, 10, "0.10")
	f.treatment(t, dto.CreateTreatmentRequest{
		PatientID:   ana,
		Date:        time.Now().Format(dto.DateLayout),
		Medications: []dto.MedicationLineRequest{{InventoryItemID: amox, Quantity: 4}},
	})

	rep, err := f.reports.Inventory(f.ctx, clinicID, dto.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalItems)
	assert.Equal(t, 1, rep.LowStockItems)
	assert.Equal(t, "240.50", rep.TotalValue.StringFixed(2))
	require.Len(t, rep.ValueByCategory, 2)
	assert.Equal(t, entity.CategoryMedication, rep.ValueByCategory[0].Category)
	assert.Equal(t, "240.00", rep.ValueByCategory[0].Value.StringFixed(2))

	require.Len(t, rep.TopProducts, 1)
	assert.Equal(t, int64(4), rep.TopProducts[0].Quantity)

	var additions, deductions int64
	for _, d := range rep.DailyMovements {
		additions += d.Additions
		deductions += d.Deductions
	}
	assert.Equal(t, int64(105), additions)
	assert.Equal(t, int64(4), deductions)
	assert.Len(t, rep.RecentTransactions, 3)
}
