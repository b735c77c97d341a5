// Package inventory contiene las reglas puras del libro de inventario (servicio de dominio).
package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// NextBalance calcula el saldo resultante de aplicar una transacción sobre previous.
//
//	addition   -> previous + quantity
//	deduction  -> previous - quantity (nunca negativo: ErrInsufficientStock)
//	adjustment -> quantity (conteo físico, fija el saldo)
func NextBalance(previous int64, txType string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return previous, domain.Validation("la cantidad debe ser un entero positivo")
	}
	switch txType {
	case entity.TransactionTypeAddition:
		return previous + quantity, nil
	case entity.TransactionTypeDeduction:
		if quantity > previous {
			return previous, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, previous, quantity)
		}
		return previous - quantity, nil
	case entity.TransactionTypeAdjustment:
		return quantity, nil
	}
	return previous, domain.Validation(fmt.Sprintf("tipo de transacción inválido: %q", txType))
}

// Apply fija tx.Balance y actualiza item.CurrentStock con el nuevo saldo.
// Si la transacción es rechazada, ni el artículo ni tx cambian.
func Apply(item *entity.InventoryItem, tx *entity.InventoryTransaction) error {
	balance, err := NextBalance(item.CurrentStock, tx.Type, tx.Quantity)
	if err != nil {
		return err
	}
	tx.Balance = balance
	item.CurrentStock = balance
	return nil
}

// Replay reconstruye el saldo a partir del historial en orden cronológico (más antiguo primero).
// Devuelve 0 si no hay transacciones.
func Replay(history []*entity.InventoryTransaction) (int64, error) {
	var balance int64
	for _, tx := range history {
		next, err := NextBalance(balance, tx.Type, tx.Quantity)
		if err != nil {
			return balance, err
		}
		balance = next
	}
	return balance, nil
}

// IsExpired indica si el artículo venció antes de now.
func IsExpired(item *entity.InventoryItem, now time.Time) bool {
	return item.ExpiryDate != nil && item.ExpiryDate.Before(now)
}

// IsExpiring indica si vence dentro de la ventana (y aún no está vencido).
func IsExpiring(item *entity.InventoryItem, now time.Time, window time.Duration) bool {
	if item.ExpiryDate == nil || IsExpired(item, now) {
		return false
	}
	return !item.ExpiryDate.After(now.Add(window))
}

// Alerts deriva las alertas de stock bajo, vencido y por vencer.
// Un artículo puede generar más de una alerta.
func Alerts(items []*entity.InventoryItem, now time.Time, window time.Duration) []entity.StockAlert {
	alerts := make([]entity.StockAlert, 0)
	for _, it := range items {
		if it.IsLowStock() {
			alerts = append(alerts, entity.StockAlert{
				InventoryItemID: it.ID,
				ItemName:        it.Name,
				Type:            entity.AlertTypeLow,
				CurrentStock:    it.CurrentStock,
				ReorderLevel:    it.ReorderLevel,
				ExpiryDate:      it.ExpiryDate,
				Message:         fmt.Sprintf("%s: stock %d %s (reorden en %d)", it.Name, it.CurrentStock, it.Unit, it.ReorderLevel),
			})
		}
		switch {
		case IsExpired(it, now):
			alerts = append(alerts, entity.StockAlert{
				InventoryItemID: it.ID,
				ItemName:        it.Name,
				Type:            entity.AlertTypeExpired,
				CurrentStock:    it.CurrentStock,
				ReorderLevel:    it.ReorderLevel,
				ExpiryDate:      it.ExpiryDate,
				Message:         fmt.Sprintf("%s venció el %s", it.Name, it.ExpiryDate.Format("2006-01-02")),
			})
		case IsExpiring(it, now, window):
			alerts = append(alerts, entity.StockAlert{
				InventoryItemID: it.ID,
				ItemName:        it.Name,
				Type:            entity.AlertTypeExpiring,
				CurrentStock:    it.CurrentStock,
				ReorderLevel:    it.ReorderLevel,
				ExpiryDate:      it.ExpiryDate,
				Message:         fmt.Sprintf("%s vence el %s", it.Name, it.ExpiryDate.Format("2006-01-02")),
			})
		}
	}
	return alerts
}
