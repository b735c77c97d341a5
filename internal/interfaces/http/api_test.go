package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/internal/application/analytics"
	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
	"github.com/jhoicas/Clinica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Clinica-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Clinica-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Clinica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI arma la API completa sobre el almacenamiento en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	cache := state.New(repos, 0, log)

	ledger := inventory.NewRegisterTransactionUseCase(store, repos.Items, repos.Transactions, cache, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ClinicUC:        usecase.NewClinicUseCase(repos.Clinics, "Clínica"),
		PatientUC:       usecase.NewPatientUseCase(repos.Patients, repos.Treatments, cache),
		ItemUC:          inventory.NewItemUseCase(store, repos.Items, ledger, cache, 30),
		Ledger:          ledger,
		Replenishment:   inventory.NewReplenishmentUseCase(cache),
		CreateTreatment: treatment.NewCreateTreatmentUseCase(store, ledger, repos.Patients, cache, true, log),
		TreatmentUC:     treatment.NewTreatmentUseCase(store, ledger, repos.Treatments, repos.Patients, cache, log),
		PaymentUC:       billing.NewPaymentUseCase(store, repos.Patients, cache, log),
		ReceiptUC: billing.NewReceiptUseCase(repos.Treatments, repos.Patients, repos.Clinics, repos.Payments,
			pdf.NewMarotoReceiptGenerator(), "K"),
		DashboardUC: analytics.NewDashboardUseCase(cache),
		ReportUC:    analytics.NewReportUseCase(cache),
		JWTSecret:   testJWTSecret,
		Logger:      log,
	})
	return app
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newClient(t *testing.T, app *fiber.App, clinicID, role string) *apiClient {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, clinicID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return &apiClient{t: t, app: app, token: tok}
}

// do envía la petición y decodifica la respuesta JSON en out (si no es nil).
func (c *apiClient) do(method, path string, body any, out any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: paciente → inventario → tratamiento → pagos → reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoConsultaCompleta(t *testing.T) {
	app := buildAPI(t)
	doctor := newClient(t, app, "clinica-1", "doctor")

	var patient map[string]any
	resp := doctor.do(http.MethodPost, "/api/patients", map[string]any{
		"name": "Ana Phiri", "age": 34, "gender": "female", "residence": "Lusaka",
	}, &patient)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	patientID := patient["id"].(string)

	var item map[string]any
	resp = doctor.do(http.MethodPost, "/api/inventory/items", map[string]any{
		"name": "Amoxicilina", "category": "medication", "unit": "caja",
		"unit_cost": "50", "reorder_level": 5, "initial_stock": 10,
	}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID := item["id"].(string)

	var tr map[string]any
	resp = doctor.do(http.MethodPost, "/api/treatments", map[string]any{
		"patient_id": patientID,
		"diagnosis":  "Faringitis",
		"medications": []map[string]any{
			{"inventory_item_id": itemID, "quantity": 2, "dosage": "500mg c/8h"},
		},
		"services": []map[string]any{{"name": "Consulta", "cost": "200"}},
	}, &tr)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	treatmentID := tr["id"].(string)
	assert.Equal(t, "300", tr["total_cost"])
	assert.Equal(t, "pending", tr["payment_status"])

	// el stock bajó por la receta
	resp = doctor.do(http.MethodGet, "/api/inventory/items/"+itemID, nil, &item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 8, item["current_stock"])

	var paid map[string]any
	resp = doctor.do(http.MethodPost, "/api/treatments/"+treatmentID+"/payments", map[string]any{
		"amount": "120", "method": "cash",
	}, &paid)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "partial", paid["treatment"].(map[string]any)["payment_status"])

	resp = doctor.do(http.MethodPost, "/api/treatments/"+treatmentID+"/payments", map[string]any{
		"amount": "200", "method": "card",
	}, &paid)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "paid", paid["treatment"].(map[string]any)["payment_status"])
	assert.Equal(t, "20", paid["change"])

	var balance map[string]any
	resp = doctor.do(http.MethodGet, "/api/patients/"+patientID+"/balance", nil, &balance)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", balance["total_owed"])
	assert.Equal(t, false, balance["has_outstanding_balance"])

	var payments map[string]any
	resp = doctor.do(http.MethodGet, "/api/patients/"+patientID+"/payments", nil, &payments)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, payments["total"])

	var history map[string]any
	resp = doctor.do(http.MethodGet, "/api/inventory/items/"+itemID+"/transactions", nil, &history)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, history["total"], "stock inicial + descuento por tratamiento")

	resp = doctor.do(http.MethodGet, "/api/treatments/"+treatmentID+"/receipt", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	var summary map[string]any
	resp = doctor.do(http.MethodGet, "/api/dashboard/summary", nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doctor.do(http.MethodGet, "/api/reports/financial.csv", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_financiero_")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores y permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_StockInsuficiente_Retorna409(t *testing.T) {
	app := buildAPI(t)
	staff := newClient(t, app, "clinica-1", "staff")

	var item map[string]any
	resp := staff.do(http.MethodPost, "/api/inventory/items", map[string]any{
		"name": "Gasas", "category": "supply", "unit_cost": "1", "initial_stock": 3,
	}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var errBody map[string]any
	resp = staff.do(http.MethodPost, "/api/inventory/transactions", map[string]any{
		"inventory_item_id": item["id"], "type": "deduction", "quantity": 5, "reason": "curación",
	}, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])
}

func TestAPI_ValidacionYNoEncontrado(t *testing.T) {
	app := buildAPI(t)
	doctor := newClient(t, app, "clinica-1", "doctor")

	var errBody map[string]any
	resp := doctor.do(http.MethodPost, "/api/patients", map[string]any{"name": "", "age": 3}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody["code"])

	resp = doctor.do(http.MethodGet, "/api/treatments/no-existe", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody["code"])

	resp = doctor.do(http.MethodGet, "/api/reports/financial?start_date=2025-03-10&end_date=2025-03-01", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_EliminarRequiereAdmin(t *testing.T) {
	app := buildAPI(t)
	doctor := newClient(t, app, "clinica-1", "doctor")
	admin := newClient(t, app, "clinica-1", "admin")

	var patient map[string]any
	resp := doctor.do(http.MethodPost, "/api/patients", map[string]any{"name": "Luis", "age": 50, "gender": "male"}, &patient)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	path := "/api/patients/" + patient["id"].(string)

	resp = doctor.do(http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = admin.do(http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = admin.do(http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ClinicasAisladas(t *testing.T) {
	app := buildAPI(t)
	a := newClient(t, app, "clinica-a", "doctor")
	b := newClient(t, app, "clinica-b", "doctor")

	var patient map[string]any
	resp := a.do(http.MethodPost, "/api/patients", map[string]any{"name": "Marta", "age": 28, "gender": "female"}, &patient)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = b.do(http.MethodGet, "/api/patients/"+patient["id"].(string), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var list map[string]any
	resp = b.do(http.MethodGet, "/api/patients", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, list["total"])
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/patients", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_DatosClinica(t *testing.T) {
	app := buildAPI(t)
	doctor := newClient(t, app, "clinica-1", "doctor")
	admin := newClient(t, app, "clinica-1", "admin")

	var clinic map[string]any
	resp := doctor.do(http.MethodGet, "/api/clinic", nil, &clinic)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Clínica", clinic["name"])

	body := map[string]any{"name": "Clínica San Rafael", "address": "Cairo Rd 12", "contact_phone": "+260 97 000"}
	resp = doctor.do(http.MethodPut, "/api/clinic", body, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = admin.do(http.MethodPut, "/api/clinic", map[string]any{"name": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = admin.do(http.MethodPut, "/api/clinic", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	clinic = nil
	resp = doctor.do(http.MethodGet, "/api/clinic", nil, &clinic)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Clínica San Rafael", clinic["name"])
	assert.Equal(t, "Cairo Rd 12", clinic["address"])
}
