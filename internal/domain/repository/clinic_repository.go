package repository

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// ClinicRepository define el puerto de persistencia para los datos de la clínica.
type ClinicRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Clinic, error)
	Upsert(ctx context.Context, clinic *entity.Clinic) error
}
