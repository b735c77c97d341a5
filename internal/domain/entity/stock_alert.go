package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertTypeLow      = "low"
	AlertTypeExpired  = "expired"
	AlertTypeExpiring = "expiring"
)

// StockAlert es una alerta derivada (no persistida) sobre un artículo.
type StockAlert struct {
	InventoryItemID string
	ItemName        string
	Type            string
	CurrentStock    int64
	ReorderLevel    int64
	ExpiryDate      *time.Time
	Message         string
}
