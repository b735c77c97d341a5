package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// PatientUseCase aplica reglas de negocio para pacientes. El saldo se deriva de los tratamientos en cada lectura.
type PatientUseCase struct {
	repo          repository.PatientRepository
	treatmentRepo repository.TreatmentRepository
	cache         *state.Cache
}

// NewPatientUseCase construye el caso de uso con los puertos de persistencia.
func NewPatientUseCase(repo repository.PatientRepository, treatmentRepo repository.TreatmentRepository, cache *state.Cache) *PatientUseCase {
	return &PatientUseCase{repo: repo, treatmentRepo: treatmentRepo, cache: cache}
}

// Create registra un paciente.
func (uc *PatientUseCase) Create(ctx context.Context, clinicID string, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	p := &entity.Patient{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		Gender:    strings.ToLower(strings.TrimSpace(in.Gender)),
		Residence: strings.TrimSpace(in.Residence),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
	}
	if err := validatePatient(p); err != nil {
		return nil, err
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, domain.Backend("crear paciente", err)
	}
	uc.cache.PutPatient(p)
	return toPatientResponse(p, nil), nil
}

// GetByID obtiene la ficha con su saldo.
func (uc *PatientUseCase) GetByID(ctx context.Context, clinicID, id string) (*dto.PatientResponse, error) {
	p, treatments, err := uc.load(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return toPatientResponse(p, treatments), nil
}

// List lista pacientes (por nombre) filtrando por nombre, residencia o teléfono.
func (uc *PatientUseCase) List(ctx context.Context, clinicID, search string) ([]dto.PatientResponse, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	byPatient := make(map[string][]*entity.Treatment)
	for _, t := range snap.Treatments {
		byPatient[t.PatientID] = append(byPatient[t.PatientID], t)
	}
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]dto.PatientResponse, 0, len(snap.Patients))
	for _, p := range snap.Patients {
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, *toPatientResponse(p, byPatient[p.ID]))
	}
	return out, nil
}

// Update modifica los campos enviados.
func (uc *PatientUseCase) Update(ctx context.Context, clinicID, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, treatments, err := uc.load(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = strings.ToLower(strings.TrimSpace(*in.Gender))
	}
	if in.Residence != nil {
		p.Residence = strings.TrimSpace(*in.Residence)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		p.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if err := validatePatient(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, domain.Backend("actualizar paciente", err)
	}
	uc.cache.PutPatient(p)
	return toPatientResponse(p, treatments), nil
}

// Delete elimina un paciente sin tratamientos. Con historial clínico devuelve ErrConflict.
func (uc *PatientUseCase) Delete(ctx context.Context, clinicID, id string) error {
	_, treatments, err := uc.load(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if len(treatments) > 0 {
		return domain.Conflict("el paciente tiene tratamientos registrados y no puede eliminarse")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Backend("eliminar paciente", err)
	}
	uc.cache.RemovePatient(clinicID, id)
	return nil
}

// Balance devuelve el estado de cuenta del paciente.
func (uc *PatientUseCase) Balance(ctx context.Context, clinicID, id string) (*dto.PatientBalanceResponse, error) {
	p, treatments, err := uc.load(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	b := billing.PatientBalance(treatments)
	return &dto.PatientBalanceResponse{
		PatientID:             p.ID,
		TotalCost:             b.TotalCost,
		TotalPaid:             b.TotalPaid,
		TotalOwed:             b.TotalOwed,
		Status:                b.Status,
		HasOutstandingBalance: b.HasOutstanding,
		Treatments:            len(treatments),
	}, nil
}

// load lee el paciente y sus tratamientos del almacenamiento (no de la caché) para responder
// con el estado confirmado más reciente.
func (uc *PatientUseCase) load(ctx context.Context, clinicID, id string) (*entity.Patient, []*entity.Treatment, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, domain.Backend("leer paciente", err)
	}
	if p == nil || p.ClinicID != clinicID {
		return nil, nil, domain.NotFound("paciente")
	}
	treatments, err := uc.treatmentRepo.ListByPatient(ctx, id)
	if err != nil {
		return nil, nil, domain.Backend("leer tratamientos", err)
	}
	return p, treatments, nil
}

func validatePatient(p *entity.Patient) error {
	if p.Name == "" {
		return domain.Validation("name es obligatorio")
	}
	if p.Age < 0 {
		return domain.Validation("age no puede ser negativa")
	}
	switch p.Gender {
	case entity.GenderMale, entity.GenderFemale, entity.GenderOther:
	default:
		return domain.Validation("gender debe ser male, female u other")
	}
	return nil
}

func matches(p *entity.Patient, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Residence), q) ||
		strings.Contains(p.Phone, q)
}

func toPatientResponse(p *entity.Patient, treatments []*entity.Treatment) *dto.PatientResponse {
	b := billing.PatientBalance(treatments)
	return &dto.PatientResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Age:                   p.Age,
		Gender:                p.Gender,
		Residence:             p.Residence,
		Phone:                 p.Phone,
		Email:                 p.Email,
		Address:               p.Address,
		TotalOutstanding:      b.TotalOwed,
		HasOutstandingBalance: b.HasOutstanding,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
