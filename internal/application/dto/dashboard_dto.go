package dto

import "github.com/shopspring/decimal"

// MonthlyRevenueDTO ingresos cobrados en un mes.
type MonthlyRevenueDTO struct {
	Month   string          `json:"month"` // ej. "Marzo 2026"
	Revenue decimal.Decimal `json:"revenue"`
}

// RecentTreatmentDTO fila del widget de tratamientos recientes.
type RecentTreatmentDTO struct {
	ID            string          `json:"id"`
	PatientID     string          `json:"patient_id"`
	PatientName   string          `json:"patient_name"`
	Diagnosis     string          `json:"diagnosis"`
	Date          string          `json:"date"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	PaymentStatus string          `json:"payment_status"`
}

// LowStockItemDTO fila del widget de stock bajo.
type LowStockItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int64  `json:"current_stock"`
	ReorderLevel int64  `json:"reorder_level"`
	Unit         string `json:"unit"`
}

// DashboardSummaryDTO resumen de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalPatients    int                  `json:"total_patients"`
	TreatmentCount   int                  `json:"treatment_count"`
	LowStockCount    int                  `json:"low_stock_count"`
	Revenue          decimal.Decimal      `json:"revenue"`     // Σ total_cost
	Collected        decimal.Decimal      `json:"collected"`   // Σ amount_paid
	Outstanding      decimal.Decimal      `json:"outstanding"` // revenue - collected
	MonthlyRevenue   []MonthlyRevenueDTO  `json:"monthly_revenue"`
	RecentTreatments []RecentTreatmentDTO `json:"recent_treatments"`
	LowStockItems    []LowStockItemDTO    `json:"low_stock_items"`
	DateLabel        string               `json:"date_label"`
}
