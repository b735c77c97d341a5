package inventory

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro de inventario: stock y transacción se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
