package treatment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// TreatmentUseCase consultas, edición y anulación de tratamientos.
type TreatmentUseCase struct {
	txRunner    TxRunner
	ledger      InventoryLedger
	repo        repository.TreatmentRepository
	patientRepo repository.PatientRepository
	cache       *state.Cache
	log         zerolog.Logger
}

// NewTreatmentUseCase construye el caso de uso.
func NewTreatmentUseCase(
	txRunner TxRunner,
	ledger InventoryLedger,
	repo repository.TreatmentRepository,
	patientRepo repository.PatientRepository,
	cache *state.Cache,
	log zerolog.Logger,
) *TreatmentUseCase {
	return &TreatmentUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		repo:        repo,
		patientRepo: patientRepo,
		cache:       cache,
		log:         log.With().Str("component", "treatment").Logger(),
	}
}

// Get obtiene un tratamiento de la clínica.
func (uc *TreatmentUseCase) Get(ctx context.Context, clinicID, id string) (*entity.Treatment, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Backend("leer tratamiento", err)
	}
	if t == nil || t.ClinicID != clinicID {
		return nil, domain.NotFound("tratamiento")
	}
	return t, nil
}

// GetByID obtiene el tratamiento con el nombre del paciente.
func (uc *TreatmentUseCase) GetByID(ctx context.Context, clinicID, id string) (*dto.TreatmentResponse, error) {
	t, err := uc.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToTreatmentResponse(t, uc.patientName(ctx, t.PatientID)), nil
}

// ListByPatient lista los tratamientos del paciente (más recientes primero) desde la caché.
func (uc *TreatmentUseCase) ListByPatient(ctx context.Context, clinicID, patientID string) ([]dto.TreatmentResponse, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	var name string
	found := false
	for _, p := range snap.Patients {
		if p.ID == patientID {
			name, found = p.Name, true
			break
		}
	}
	if !found {
		return nil, domain.NotFound("paciente")
	}
	out := make([]dto.TreatmentResponse, 0)
	for _, t := range snap.Treatments {
		if t.PatientID == patientID {
			out = append(out, *ToTreatmentResponse(t, name))
		}
	}
	return out, nil
}

// Update modifica diagnóstico, notas y fechas. Medicamentos, servicios y montos no se editan.
func (uc *TreatmentUseCase) Update(ctx context.Context, clinicID, id string, in dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	t, err := uc.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if in.Diagnosis != nil {
		d := strings.TrimSpace(*in.Diagnosis)
		if d == "" {
			return nil, domain.Validation("diagnosis no puede estar vacío")
		}
		t.Diagnosis = d
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	if in.Date != nil {
		date, err := dto.ParseDate("date", *in.Date)
		if err != nil {
			return nil, err
		}
		if date == nil {
			return nil, domain.Validation("date no puede estar vacío")
		}
		t.Date = *date
	}
	if in.DueDate != nil {
		due, err := dto.ParseDate("due_date", *in.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, domain.Backend("actualizar tratamiento", err)
	}
	// Releer: los montos pudieron cambiar por un pago concurrente
	if fresh, err := uc.repo.GetByID(ctx, id); err == nil && fresh != nil {
		t = fresh
	}
	uc.cache.PutTreatment(t)
	return ToTreatmentResponse(t, uc.patientName(ctx, t.PatientID)), nil
}

// Delete anula un tratamiento sin pagos. Las salidas de inventario que generó se
// devuelven con entradas de referencia "treatment" en la misma transacción.
func (uc *TreatmentUseCase) Delete(ctx context.Context, clinicID, userID, id string) error {
	var returns []*entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		now := time.Now()
		t, err := repos.Treatments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil || t.ClinicID != clinicID {
			return domain.NotFound("tratamiento")
		}
		payments, err := repos.Payments.ListByTreatment(ctx, id)
		if err != nil {
			return err
		}
		if len(payments) > 0 || t.AmountPaid.IsPositive() {
			return domain.Conflict("el tratamiento tiene pagos registrados y no puede eliminarse")
		}

		deducted, err := deductedByTreatment(ctx, repos, t)
		if err != nil {
			return err
		}
		for _, med := range t.Medications {
			qty := deducted[med.InventoryItemID]
			if qty <= 0 {
				continue
			}
			delete(deducted, med.InventoryItemID)
			tx, err := uc.ledger.RecordInTx(ctx, repos, inventory.TransactionInputDTO{
				ClinicID:      clinicID,
				UserID:        userID,
				ItemID:        med.InventoryItemID,
				Type:          entity.TransactionTypeAddition,
				Quantity:      qty,
				Reason:        "Anulación de tratamiento: " + t.Diagnosis,
				ReferenceID:   t.ID,
				ReferenceType: entity.ReferenceTypeTreatment,
			}, now)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// El artículo fue eliminado: no hay stock al cual devolver.
					continue
				}
				return err
			}
			returns = append(returns, tx)
		}
		return repos.Treatments.Delete(ctx, id)
	})
	if err != nil {
		return domain.Backend("eliminar tratamiento", err)
	}

	uc.cache.RemoveTreatment(clinicID, id)
	for _, tx := range returns {
		uc.cache.AppendTransaction(tx)
	}
	uc.log.Info().Str("clinic_id", clinicID).Str("treatment_id", id).Int("returns", len(returns)).Msg("tratamiento eliminado")
	return nil
}

// deductedByTreatment suma, por artículo, lo descontado por el tratamiento menos lo ya devuelto.
func deductedByTreatment(ctx context.Context, repos repository.Repos, t *entity.Treatment) (map[string]int64, error) {
	out := make(map[string]int64)
	seen := make(map[string]bool)
	for _, med := range t.Medications {
		if seen[med.InventoryItemID] {
			continue
		}
		seen[med.InventoryItemID] = true
		history, err := repos.Transactions.ListByItem(ctx, med.InventoryItemID)
		if err != nil {
			return nil, err
		}
		for _, tx := range history {
			if tx.ReferenceType != entity.ReferenceTypeTreatment || tx.ReferenceID != t.ID {
				continue
			}
			switch tx.Type {
			case entity.TransactionTypeDeduction:
				out[med.InventoryItemID] += tx.Quantity
			case entity.TransactionTypeAddition:
				out[med.InventoryItemID] -= tx.Quantity
			}
		}
	}
	return out, nil
}

func (uc *TreatmentUseCase) patientName(ctx context.Context, patientID string) string {
	p, err := uc.patientRepo.GetByID(ctx, patientID)
	if err != nil || p == nil {
		return ""
	}
	return p.Name
}

// ToTreatmentResponse convierte un tratamiento en DTO.
func ToTreatmentResponse(t *entity.Treatment, patientName string) *dto.TreatmentResponse {
	meds := make([]dto.MedicationLineResponse, 0, len(t.Medications))
	for _, m := range t.Medications {
		meds = append(meds, dto.MedicationLineResponse{
			ID:              m.ID,
			InventoryItemID: m.InventoryItemID,
			Name:            m.Name,
			Quantity:        m.Quantity,
			Dosage:          m.Dosage,
			Instructions:    m.Instructions,
			UnitCost:        m.UnitCost,
			TotalCost:       m.TotalCost,
		})
	}
	services := make([]dto.ServiceLineResponse, 0, len(t.Services))
	for _, s := range t.Services {
		services = append(services, dto.ServiceLineResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Cost:        s.Cost,
		})
	}
	return &dto.TreatmentResponse{
		ID:            t.ID,
		PatientID:     t.PatientID,
		PatientName:   patientName,
		Diagnosis:     t.Diagnosis,
		Notes:         t.Notes,
		Date:          t.Date.Format(dto.DateLayout),
		DueDate:       dto.FormatDate(t.DueDate),
		Medications:   meds,
		Services:      services,
		TotalCost:     t.TotalCost,
		AmountPaid:    t.AmountPaid,
		Outstanding:   t.Outstanding(),
		PaymentStatus: t.PaymentStatus,
		CreatedAt:     t.CreatedAt,
	}
}
