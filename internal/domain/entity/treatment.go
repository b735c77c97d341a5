package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de un tratamiento.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Treatment representa una consulta con diagnóstico, medicamentos recetados y servicios.
// TotalCost se fija al crear y no se recalcula aunque cambien los costos del inventario.
type Treatment struct {
	ID            string
	ClinicID      string
	PatientID     string
	Diagnosis     string
	Notes         string
	Medications   []TreatmentMedication
	Services      []TreatmentService
	Date          time.Time
	DueDate       *time.Time
	TotalCost     decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentStatus string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Outstanding devuelve TotalCost - AmountPaid.
func (t *Treatment) Outstanding() decimal.Decimal {
	return t.TotalCost.Sub(t.AmountPaid)
}

// TreatmentMedication es un medicamento recetado; UnitCost es la foto del costo al recetar.
type TreatmentMedication struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Quantity        int64           `json:"quantity"`
	Dosage          string          `json:"dosage"`
	Instructions    string          `json:"instructions,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// TreatmentService es un servicio cobrado dentro del tratamiento.
type TreatmentService struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
}
