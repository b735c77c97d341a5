package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
// InitialStock > 0 se registra como una entrada "Stock inicial" en el libro.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ReorderLevel    int64           `json:"reorder_level"`
	ReorderQuantity int64           `json:"reorder_quantity"`
	InitialStock    int64           `json:"initial_stock"`
	Supplier        string          `json:"supplier"`
	Notes           string          `json:"notes"`
	ExpiryDate      string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

// UpdateItemRequest body para PUT /api/inventory/items/:id. El stock no se edita aquí.
type UpdateItemRequest struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category"`
	Unit            *string          `json:"unit"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	ReorderLevel    *int64           `json:"reorder_level"`
	ReorderQuantity *int64           `json:"reorder_quantity"`
	Supplier        *string          `json:"supplier"`
	Notes           *string          `json:"notes"`
	ExpiryDate      *string          `json:"expiry_date"` // "" elimina la fecha
}

// ItemResponse salida de un artículo de inventario.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	CurrentStock    int64           `json:"current_stock"`
	Unit            string          `json:"unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ReorderLevel    int64           `json:"reorder_level"`
	ReorderQuantity int64           `json:"reorder_quantity"`
	Supplier        string          `json:"supplier,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ExpiryDate      string          `json:"expiry_date,omitempty"`
	IsLowStock      bool            `json:"is_low_stock"`
	StockValue      decimal.Decimal `json:"stock_value"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemFilter filtros de GET /api/inventory/items.
type ItemFilter struct {
	Category     string `query:"category"`
	LowStockOnly bool   `query:"low_stock"`
	Search       string `query:"q"`
}

// RecordTransactionRequest body para POST /api/inventory/transactions.
type RecordTransactionRequest struct {
	InventoryItemID string `json:"inventory_item_id"`
	Type            string `json:"type"` // addition | deduction | adjustment
	Quantity        int64  `json:"quantity"`
	Reason          string `json:"reason"`
	ReferenceID     string `json:"reference_id,omitempty"`
	ReferenceType   string `json:"reference_type,omitempty"` // manual (defecto) | treatment | purchase
}

// TransactionResponse fila del libro de inventario.
type TransactionResponse struct {
	ID              string    `json:"id"`
	InventoryItemID string    `json:"inventory_item_id"`
	ItemName        string    `json:"item_name,omitempty"`
	Type            string    `json:"type"`
	Quantity        int64     `json:"quantity"`
	Balance         int64     `json:"balance"`
	Reason          string    `json:"reason"`
	ReferenceID     string    `json:"reference_id,omitempty"`
	ReferenceType   string    `json:"reference_type"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by"`
}

// StockAlertDTO alerta derivada de stock bajo o vencimiento.
type StockAlertDTO struct {
	InventoryItemID string `json:"inventory_item_id"`
	ItemName        string `json:"item_name"`
	Type            string `json:"type"` // low | expired | expiring
	CurrentStock    int64  `json:"current_stock"`
	ReorderLevel    int64  `json:"reorder_level"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
	Message         string `json:"message"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un artículo en o bajo su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	InventoryItemID    string          `json:"inventory_item_id"`
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	Unit               string          `json:"unit"`
	Supplier           string          `json:"supplier,omitempty"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderLevel       int64           `json:"reorder_level"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	UsedLast90Days     int64           `json:"used_last_90d"`        // salidas registradas en el libro
	Priority           int             `json:"priority"`             // 1 = más urgente
}
