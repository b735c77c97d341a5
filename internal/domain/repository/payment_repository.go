package repository

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para pagos (append-only).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByTreatment(ctx context.Context, treatmentID string) ([]*entity.Payment, error)
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.Payment, error)
}
