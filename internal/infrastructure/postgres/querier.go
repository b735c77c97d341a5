package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios funcionan igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepos construye el conjunto de repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Clinics:      NewClinicRepository(q),
		Patients:     NewPatientRepository(q),
		Items:        NewInventoryItemRepository(q),
		Transactions: NewInventoryTransactionRepository(q),
		Treatments:   NewTreatmentRepository(q),
		Payments:     NewPaymentRepository(q),
	}
}
