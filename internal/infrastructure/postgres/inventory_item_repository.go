package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, clinic_id, name, category, current_stock, unit, unit_cost, reorder_level, reorder_quantity,
	supplier, notes, expiry_date, created_at, updated_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un artículo nuevo.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.ClinicID, it.Name, it.Category, it.CurrentStock, it.Unit, it.UnitCost, it.ReorderLevel,
		it.ReorderQuantity, it.Supplier, it.Notes, it.ExpiryDate, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// Update modifica los datos descriptivos. current_stock solo cambia vía UpdateStock.
func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, category = $3, unit = $4, unit_cost = $5, reorder_level = $6,
			reorder_quantity = $7, supplier = $8, notes = $9, expiry_date = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Category, it.Unit, it.UnitCost, it.ReorderLevel, it.ReorderQuantity,
		it.Supplier, it.Notes, it.ExpiryDate, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el saldo resultante de una transacción del libro.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update inventory stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el artículo; su historial cae por ON DELETE CASCADE.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// ListByClinic lista los artículos de la clínica ordenados por nombre.
func (r *InventoryItemRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE clinic_id = $1 ORDER BY name`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.ClinicID, &it.Name, &it.Category, &it.CurrentStock, &it.Unit, &it.UnitCost,
		&it.ReorderLevel, &it.ReorderQuantity, &it.Supplier, &it.Notes, &it.ExpiryDate, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
