package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Clinica-api/internal/application/analytics"
	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClinicUC        *usecase.ClinicUseCase
	PatientUC       *usecase.PatientUseCase
	ItemUC          *inventory.ItemUseCase
	Ledger          *inventory.RegisterTransactionUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	CreateTreatment *treatment.CreateTreatmentUseCase
	TreatmentUC     *treatment.TreatmentUseCase
	PaymentUC       *billing.PaymentUseCase
	ReceiptUC       *billing.ReceiptUseCase
	DashboardUC     *analytics.DashboardUseCase
	ReportUC        *analytics.ReportUseCase
	JWTSecret       string
	Logger          zerolog.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token; los DELETE y PUT /clinic solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger), AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Clínica
	clinicHandler := NewClinicHandler(deps.ClinicUC)
	api.Get("/clinic", clinicHandler.Get)
	api.Put("/clinic", adminOnly, clinicHandler.Upsert)

	// Pacientes
	patients := api.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC, deps.TreatmentUC, deps.PaymentUC)
	patients.Get("/", patientHandler.List)
	patients.Post("/", patientHandler.Create)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", adminOnly, patientHandler.Delete)
	patients.Get("/:id/balance", patientHandler.Balance)
	patients.Get("/:id/treatments", patientHandler.Treatments)
	patients.Get("/:id/payments", patientHandler.Payments)

	// Inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.Ledger, deps.Replenishment)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Put("/items/:id", inventoryHandler.UpdateItem)
	inv.Delete("/items/:id", adminOnly, inventoryHandler.DeleteItem)
	inv.Get("/items/:id/transactions", inventoryHandler.ItemHistory)
	inv.Get("/transactions", inventoryHandler.RecentTransactions)
	inv.Post("/transactions", inventoryHandler.RecordTransaction)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Tratamientos, pagos y comprobante
	treatments := api.Group("/treatments")
	treatmentHandler := NewTreatmentHandler(deps.CreateTreatment, deps.TreatmentUC, deps.PaymentUC, deps.ReceiptUC)
	treatments.Post("/", treatmentHandler.Create)
	treatments.Get("/:id", treatmentHandler.GetByID)
	treatments.Put("/:id", treatmentHandler.Update)
	treatments.Delete("/:id", adminOnly, treatmentHandler.Delete)
	treatments.Post("/:id/payments", treatmentHandler.ApplyPayment)
	treatments.Get("/:id/receipt", treatmentHandler.Receipt)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.Get("/payments", paymentHandler.List)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/financial", reportHandler.Financial)
	reports.Get("/financial.csv", reportHandler.FinancialCSV)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/patients", reportHandler.Patients)
}
