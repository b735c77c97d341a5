package repository

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto del libro de inventario (append-only).
// Los listados se devuelven del más reciente al más antiguo.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryTransaction, error)
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.InventoryTransaction, error)
	// DeleteByItem se usa solo al eliminar el artículo dueño del historial.
	DeleteByItem(ctx context.Context, itemID string) error
}
