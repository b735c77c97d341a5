package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// TreatmentRepository define el puerto de persistencia para tratamientos.
// Medicamentos y servicios se guardan embebidos con la cabecera.
type TreatmentRepository interface {
	Create(ctx context.Context, treatment *entity.Treatment) error
	GetByID(ctx context.Context, id string) (*entity.Treatment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Treatment, error)
	// Update modifica diagnosis, notes, date y due_date.
	Update(ctx context.Context, treatment *entity.Treatment) error
	UpdatePayment(ctx context.Context, id string, amountPaid decimal.Decimal, status string) error
	Delete(ctx context.Context, id string) error
	ListByPatient(ctx context.Context, patientID string) ([]*entity.Treatment, error)
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.Treatment, error)
}
