package repository

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para artículos de inventario.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update modifica los datos descriptivos; nunca CurrentStock.
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateStock(ctx context.Context, id string, stock int64) error
	Delete(ctx context.Context, id string) error
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.InventoryItem, error)
}
