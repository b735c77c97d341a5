package treatment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// CreateTreatmentUseCase crea un tratamiento y descuenta del inventario los medicamentos
// recetados en una sola transacción.
type CreateTreatmentUseCase struct {
	txRunner    TxRunner
	ledger      InventoryLedger
	patientRepo repository.PatientRepository
	cache       *state.Cache
	deductStock bool
	log         zerolog.Logger
}

// NewCreateTreatmentUseCase construye el caso de uso. deductStock activa el descuento
// automático de medicamentos (INVENTORY_DEDUCT_ON_TREATMENT).
func NewCreateTreatmentUseCase(
	txRunner TxRunner,
	ledger InventoryLedger,
	patientRepo repository.PatientRepository,
	cache *state.Cache,
	deductStock bool,
	log zerolog.Logger,
) *CreateTreatmentUseCase {
	return &CreateTreatmentUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		patientRepo: patientRepo,
		cache:       cache,
		deductStock: deductStock,
		log:         log.With().Str("component", "treatment").Logger(),
	}
}

// CreateTreatment valida el paciente y las líneas, congela el costo unitario de cada medicamento,
// calcula el total, guarda el tratamiento y registra una salida por medicamento.
// Stock insuficiente en cualquier línea revierte todo.
func (uc *CreateTreatmentUseCase) CreateTreatment(ctx context.Context, clinicID, userID string, in dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if strings.TrimSpace(in.PatientID) == "" {
		return nil, domain.Validation("patient_id es obligatorio")
	}
	in.Diagnosis = strings.TrimSpace(in.Diagnosis)
	if in.Diagnosis == "" {
		return nil, domain.Validation("diagnosis es obligatorio")
	}
	if len(in.Medications) == 0 && len(in.Services) == 0 {
		return nil, domain.Validation("el tratamiento requiere al menos un medicamento o un servicio")
	}
	for i, m := range in.Medications {
		if m.InventoryItemID == "" {
			return nil, domain.Validation(fmt.Sprintf("medications[%d]: inventory_item_id es obligatorio", i))
		}
		if m.Quantity <= 0 {
			return nil, domain.Validation(fmt.Sprintf("medications[%d]: la cantidad debe ser un entero positivo", i))
		}
	}
	for i, s := range in.Services {
		if strings.TrimSpace(s.Name) == "" {
			return nil, domain.Validation(fmt.Sprintf("services[%d]: name es obligatorio", i))
		}
		if s.Cost.LessThan(decimal.Zero) {
			return nil, domain.Validation(fmt.Sprintf("services[%d]: cost no puede ser negativo", i))
		}
	}
	now := time.Now()
	date, err := dto.ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		date = &now
	}
	dueDate, err := dto.ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}

	// Validar paciente y que sea de la clínica (fuera de la tx, solo lectura)
	patient, err := uc.patientRepo.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, domain.Backend("leer paciente", err)
	}
	if patient == nil || patient.ClinicID != clinicID {
		return nil, domain.NotFound("paciente")
	}

	t := &entity.Treatment{
		ID:            uuid.New().String(),
		ClinicID:      clinicID,
		PatientID:     patient.ID,
		Diagnosis:     in.Diagnosis,
		Notes:         in.Notes,
		Date:          *date,
		DueDate:       dueDate,
		AmountPaid:    decimal.Zero,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, s := range in.Services {
		t.Services = append(t.Services, entity.TreatmentService{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(s.Name),
			Description: s.Description,
			Cost:        s.Cost,
		})
	}

	var deductions []*entity.InventoryTransaction
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		// Congelar nombre y costo unitario de cada medicamento al momento de recetar
		for _, m := range in.Medications {
			item, err := repos.Items.GetByID(ctx, m.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil || item.ClinicID != clinicID {
				return domain.NotFound("artículo de inventario " + m.InventoryItemID)
			}
			t.Medications = append(t.Medications, entity.TreatmentMedication{
				ID:              uuid.New().String(),
				InventoryItemID: item.ID,
				Name:            item.Name,
				Quantity:        m.Quantity,
				Dosage:          m.Dosage,
				Instructions:    m.Instructions,
				UnitCost:        item.UnitCost,
				TotalCost:       billing.MedicationCost(m.Quantity, item.UnitCost),
			})
		}
		total, err := billing.ComputeTotalCost(t.Medications, t.Services)
		if err != nil {
			return err
		}
		t.TotalCost = total
		// Un tratamiento sin costo (p. ej. control gratuito) nace saldado.
		t.PaymentStatus = billing.TreatmentStatus(total, decimal.Zero)

		if err := repos.Treatments.Create(ctx, t); err != nil {
			return err
		}
		if !uc.deductStock {
			return nil
		}
		deductedAt := time.Now()
		for _, med := range t.Medications {
			tx, err := uc.ledger.RecordInTx(ctx, repos, inventory.TransactionInputDTO{
				ClinicID:      clinicID,
				UserID:        userID,
				ItemID:        med.InventoryItemID,
				Type:          entity.TransactionTypeDeduction,
				Quantity:      med.Quantity,
				Reason:        "Tratamiento: " + t.Diagnosis,
				ReferenceID:   t.ID,
				ReferenceType: entity.ReferenceTypeTreatment,
			}, deductedAt)
			if err != nil {
				return fmt.Errorf("medicamento %s: %w", med.Name, err)
			}
			deductions = append(deductions, tx)
		}
		return nil
	})
	if err != nil {
		err = domain.Backend("crear tratamiento", err)
		uc.log.Warn().Err(err).Str("patient_id", in.PatientID).Msg("tratamiento rechazado")
		return nil, err
	}

	uc.cache.PutTreatment(t)
	for _, tx := range deductions {
		uc.cache.AppendTransaction(tx)
	}
	uc.log.Info().
		Str("clinic_id", clinicID).
		Str("treatment_id", t.ID).
		Str("total_cost", t.TotalCost.StringFixed(2)).
		Int("medications", len(t.Medications)).
		Int("services", len(t.Services)).
		Msg("tratamiento creado")
	return ToTreatmentResponse(t, patient.Name), nil
}
