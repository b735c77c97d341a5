package treatment

import (
	"context"
	"time"

	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y tratamientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// InventoryLedger integra tratamientos con el libro de inventario.
// RecordInTx usa los repositorios del caller (misma transacción); si retorna error
// (ej: ErrInsufficientStock) el caller debe hacer rollback.
type InventoryLedger interface {
	RecordInTx(
		ctx context.Context,
		repos repository.Repos,
		in inventory.TransactionInputDTO,
		now time.Time,
	) (*entity.InventoryTransaction, error)
}
