package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de artículos de inventario.
const (
	CategoryMedication = "medication"
	CategorySupply     = "supply"
	CategoryEquipment  = "equipment"
)

// ValidCategory indica si la categoría es una de las admitidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMedication, CategorySupply, CategoryEquipment:
		return true
	}
	return false
}

// InventoryItem representa un medicamento, insumo o equipo.
// CurrentStock solo cambia a través de transacciones del libro (ledger).
type InventoryItem struct {
	ID              string
	ClinicID        string
	Name            string
	Category        string
	CurrentStock    int64
	Unit            string
	UnitCost        decimal.Decimal
	ReorderLevel    int64
	ReorderQuantity int64
	Supplier        string
	Notes           string
	ExpiryDate      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock es true cuando el stock está en o por debajo del nivel de reorden.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.ReorderLevel
}

// StockValue devuelve CurrentStock * UnitCost.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.CurrentStock))
}
