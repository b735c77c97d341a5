package dto

import "github.com/shopspring/decimal"

// ReportRequest query params comunes de /api/reports/*.
type ReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, defecto primer día del mes
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, defecto hoy
}

// DailyRevenueDTO ingresos cobrados en un día.
type DailyRevenueDTO struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ServiceRevenueDTO ingresos por servicio.
type ServiceRevenueDTO struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FinancialReportDTO reporte financiero del período.
// TotalRevenue y DailyRevenue salen de los pagos cobrados; MedicationAmount y
// ServicesAmount de lo facturado en los tratamientos del período.
type FinancialReportDTO struct {
	Period              PeriodDTO           `json:"period"`
	DailyRevenue        []DailyRevenueDTO   `json:"daily_revenue"`
	TotalRevenue        decimal.Decimal     `json:"total_revenue"`
	AverageDailyRevenue decimal.Decimal     `json:"average_daily_revenue"`
	MedicationAmount    decimal.Decimal     `json:"medication_amount"`
	ServicesAmount      decimal.Decimal     `json:"services_amount"`
	TopServices         []ServiceRevenueDTO `json:"top_services"`
	ActivePatients      int                 `json:"active_patients"`
}

// CategoryValueDTO valor del inventario por categoría.
type CategoryValueDTO struct {
	Category string          `json:"category"`
	Items    int             `json:"items"`
	Value    decimal.Decimal `json:"value"`
}

// ProductUsageDTO cantidad recetada de un artículo.
type ProductUsageDTO struct {
	InventoryItemID string `json:"inventory_item_id"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
}

// DailyMovementDTO entradas y salidas de un día.
type DailyMovementDTO struct {
	Date       string `json:"date"`
	Additions  int64  `json:"additions"`
	Deductions int64  `json:"deductions"`
}

// InventoryReportDTO reporte de inventario del período.
type InventoryReportDTO struct {
	Period             PeriodDTO             `json:"period"`
	ValueByCategory    []CategoryValueDTO    `json:"value_by_category"`
	TopProducts        []ProductUsageDTO     `json:"top_products"`
	DailyMovements     []DailyMovementDTO    `json:"daily_movements"`
	TotalItems         int                   `json:"total_items"`
	LowStockItems      int                   `json:"low_stock_items"`
	TotalValue         decimal.Decimal       `json:"total_value"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// CountDTO par etiqueta/cantidad para distribuciones.
type CountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DailyVisitsDTO visitas nuevas y de retorno por día.
type DailyVisitsDTO struct {
	Date   string `json:"date"`
	New    int    `json:"new"`
	Return int    `json:"return"`
}

// PatientReportDTO reporte de pacientes del período.
type PatientReportDTO struct {
	Period         PeriodDTO        `json:"period"`
	Gender         []CountDTO       `json:"gender"`
	AgeRanges      []CountDTO       `json:"age_ranges"`
	DailyVisits    []DailyVisitsDTO `json:"daily_visits"`
	TotalPatients  int              `json:"total_patients"`
	ActivePatients int              `json:"active_patients"`
}
