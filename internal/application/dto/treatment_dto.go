package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicationLineRequest medicamento recetado; el costo unitario se toma del inventario.
type MedicationLineRequest struct {
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        int64  `json:"quantity"`
	Dosage          string `json:"dosage"`
	Instructions    string `json:"instructions"`
}

// ServiceLineRequest servicio cobrado.
type ServiceLineRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// CreateTreatmentRequest body para POST /api/treatments.
type CreateTreatmentRequest struct {
	PatientID   string                  `json:"patient_id"`
	Diagnosis   string                  `json:"diagnosis"`
	Notes       string                  `json:"notes"`
	Date        string                  `json:"date,omitempty"`     // YYYY-MM-DD, defecto hoy
	DueDate     string                  `json:"due_date,omitempty"` // YYYY-MM-DD
	Medications []MedicationLineRequest `json:"medications"`
	Services    []ServiceLineRequest    `json:"services"`
}

// UpdateTreatmentRequest body para PUT /api/treatments/:id. Las líneas no se editan.
type UpdateTreatmentRequest struct {
	Diagnosis *string `json:"diagnosis"`
	Notes     *string `json:"notes"`
	Date      *string `json:"date"`
	DueDate   *string `json:"due_date"` // "" elimina la fecha
}

// MedicationLineResponse medicamento con costo congelado.
type MedicationLineResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Quantity        int64           `json:"quantity"`
	Dosage          string          `json:"dosage"`
	Instructions    string          `json:"instructions,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// ServiceLineResponse servicio del tratamiento.
type ServiceLineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
}

// TreatmentResponse salida de un tratamiento.
type TreatmentResponse struct {
	ID            string                   `json:"id"`
	PatientID     string                   `json:"patient_id"`
	PatientName   string                   `json:"patient_name,omitempty"`
	Diagnosis     string                   `json:"diagnosis"`
	Notes         string                   `json:"notes,omitempty"`
	Date          string                   `json:"date"`
	DueDate       string                   `json:"due_date,omitempty"`
	Medications   []MedicationLineResponse `json:"medications"`
	Services      []ServiceLineResponse    `json:"services"`
	TotalCost     decimal.Decimal          `json:"total_cost"`
	AmountPaid    decimal.Decimal          `json:"amount_paid"`
	Outstanding   decimal.Decimal          `json:"outstanding"`
	PaymentStatus string                   `json:"payment_status"`
	CreatedAt     time.Time                `json:"created_at"`
}
