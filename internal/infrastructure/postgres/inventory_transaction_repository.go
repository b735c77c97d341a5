package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

const transactionInsertColumns = `id, clinic_id, inventory_item_id, type, quantity, balance, reason, reference_id, reference_type,
	created_at, created_by`

// seq (BIGSERIAL) desempata filas con el mismo created_at en orden de inserción.
const transactionColumns = transactionInsertColumns + `, seq`

// InventoryTransactionRepo implementación del libro de inventario sobre PostgreSQL (solo inserciones).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create registra una fila del libro y carga en t.Seq el secuencial asignado por la base.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `INSERT INTO inventory_transactions (` + transactionInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		t.ID, t.ClinicID, t.InventoryItemID, t.Type, t.Quantity, t.Balance, t.Reason, t.ReferenceID,
		t.ReferenceType, t.CreatedAt, t.CreatedBy,
	).Scan(&t.Seq)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial de un artículo, más reciente primero.
func (r *InventoryTransactionRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryTransaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions
		WHERE inventory_item_id = $1 ORDER BY created_at DESC, seq DESC`, itemID)
}

// ListByClinic devuelve todas las transacciones de la clínica, más reciente primero.
func (r *InventoryTransactionRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.InventoryTransaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions
		WHERE clinic_id = $1 ORDER BY created_at DESC, seq DESC`, clinicID)
}

// DeleteByItem borra el historial del artículo (la FK en cascada lo haría igual al borrar el artículo).
func (r *InventoryTransactionRepo) DeleteByItem(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_transactions WHERE inventory_item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete inventory transactions: %w", err)
	}
	return nil
}

func (r *InventoryTransactionRepo) list(ctx context.Context, query, arg string) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	err := row.Scan(&t.ID, &t.ClinicID, &t.InventoryItemID, &t.Type, &t.Quantity, &t.Balance, &t.Reason,
		&t.ReferenceID, &t.ReferenceType, &t.CreatedAt, &t.CreatedBy, &t.Seq)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
