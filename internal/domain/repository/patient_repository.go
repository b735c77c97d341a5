package repository

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para Patient.
// GetByID devuelve (nil, nil) si no existe.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id string) error
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.Patient, error)
}
