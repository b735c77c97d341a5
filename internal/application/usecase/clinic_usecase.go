package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// ClinicUseCase lee y guarda los datos de la clínica (encabezado de comprobantes y reportes).
type ClinicUseCase struct {
	repo        repository.ClinicRepository
	defaultName string
}

// NewClinicUseCase construye el caso de uso. defaultName se usa mientras la clínica no esté configurada.
func NewClinicUseCase(repo repository.ClinicRepository, defaultName string) *ClinicUseCase {
	return &ClinicUseCase{repo: repo, defaultName: defaultName}
}

// Get devuelve los datos de la clínica; si aún no existen, valores por defecto.
func (uc *ClinicUseCase) Get(ctx context.Context, clinicID string) (*dto.ClinicResponse, error) {
	c, err := uc.repo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("leer clínica", err)
	}
	if c == nil {
		c = &entity.Clinic{ID: clinicID, Name: uc.defaultName}
	}
	return toClinicResponse(c), nil
}

// Upsert crea o reemplaza los datos de la clínica.
func (uc *ClinicUseCase) Upsert(ctx context.Context, clinicID string, in dto.UpsertClinicRequest) (*dto.ClinicResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name es obligatorio")
	}
	existing, err := uc.repo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("leer clínica", err)
	}
	now := time.Now()
	c := &entity.Clinic{
		ID:           clinicID,
		Name:         name,
		Address:      strings.TrimSpace(in.Address),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if existing != nil {
		c.CreatedAt = existing.CreatedAt
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, domain.Backend("guardar clínica", err)
	}
	return toClinicResponse(c), nil
}

func toClinicResponse(c *entity.Clinic) *dto.ClinicResponse {
	return &dto.ClinicResponse{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		UpdatedAt:    c.UpdatedAt,
	}
}
