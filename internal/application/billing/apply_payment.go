package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/domain"
	dombilling "github.com/jhoicas/Clinica-api/internal/domain/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// PaymentUseCase registra abonos a tratamientos y consulta el historial de pagos.
type PaymentUseCase struct {
	txRunner    TxRunner
	patientRepo repository.PatientRepository
	cache       *state.Cache
	log         zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner, patientRepo repository.PatientRepository, cache *state.Cache, log zerolog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:    txRunner,
		patientRepo: patientRepo,
		cache:       cache,
		log:         log.With().Str("component", "billing").Logger(),
	}
}

// ApplyPayment bloquea el tratamiento, suma el abono (con tope en el total), guarda el pago
// con el monto aplicado y devuelve el excedente como Change. Abonos concurrentes sobre el
// mismo tratamiento se serializan por el bloqueo de fila.
func (uc *PaymentUseCase) ApplyPayment(ctx context.Context, clinicID, userID, treatmentID string, in dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error) {
	// ── 1. Validar entrada ────────────────────────────────────────────────────
	if !in.Amount.IsPositive() {
		return nil, domain.Validation("el monto del pago debe ser mayor que cero")
	}
	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.Validation("method debe ser cash, card, mobile, insurance u other")
	}
	now := time.Now()
	payDate, err := dto.ParseDate("payment_date", in.PaymentDate)
	if err != nil {
		return nil, err
	}
	if payDate == nil {
		payDate = &now
	}

	// ── 2. Aplicar en transacción ─────────────────────────────────────────────
	var (
		t       *entity.Treatment
		payment *entity.Payment
		applied decimal.Decimal
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		t, err = repos.Treatments.GetForUpdate(ctx, treatmentID)
		if err != nil {
			return err
		}
		if t == nil || t.ClinicID != clinicID {
			return domain.NotFound("tratamiento")
		}
		applied, err = dombilling.ApplyPayment(t, in.Amount)
		if err != nil {
			return err
		}
		// Con la fila bloqueada, UpdatedAt sigue el orden de commit
		t.UpdatedAt = time.Now()
		if err := repos.Treatments.UpdatePayment(ctx, t.ID, t.AmountPaid, t.PaymentStatus); err != nil {
			return err
		}
		notes := strings.TrimSpace(in.Notes)
		if notes == "" {
			notes = "Pago de tratamiento: " + t.Diagnosis
		}
		payment = &entity.Payment{
			ID:          uuid.New().String(),
			ClinicID:    clinicID,
			TreatmentID: t.ID,
			PatientID:   t.PatientID,
			Amount:      applied,
			PaymentDate: *payDate,
			Method:      method,
			Status:      entity.PaymentCompleted,
			Notes:       notes,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
		return repos.Payments.Create(ctx, payment)
	})
	if err != nil {
		err = domain.Backend("aplicar pago", err)
		if errors.Is(err, domain.ErrBackend) {
			uc.log.Error().Err(err).Str("treatment_id", treatmentID).Msg("fallo al aplicar pago")
		}
		return nil, err
	}

	// ── 3. Reflejar en la caché solo tras el commit ───────────────────────────
	uc.cache.PutTreatment(t)
	uc.cache.AppendPayment(payment)

	change := in.Amount.Sub(applied)
	uc.log.Info().
		Str("clinic_id", clinicID).
		Str("treatment_id", t.ID).
		Str("applied", applied.StringFixed(2)).
		Str("change", change.StringFixed(2)).
		Str("status", t.PaymentStatus).
		Msg("pago aplicado")

	return &dto.ApplyPaymentResponse{
		Payment:   *ToPaymentResponse(payment),
		Treatment: *treatment.ToTreatmentResponse(t, uc.patientName(ctx, t.PatientID)),
		Change:    change,
	}, nil
}

// List devuelve los pagos de la clínica (más recientes primero) filtrados por paciente y periodo.
func (uc *PaymentUseCase) List(ctx context.Context, clinicID string, f dto.PaymentFilter) ([]dto.PaymentResponse, error) {
	start, err := dto.ParseDate("start_date", f.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("end_date", f.EndDate)
	if err != nil {
		return nil, err
	}
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0)
	for _, p := range snap.Payments {
		if f.PatientID != "" && p.PatientID != f.PatientID {
			continue
		}
		if start != nil && p.PaymentDate.Before(*start) {
			continue
		}
		// end inclusivo: todo el día
		if end != nil && !p.PaymentDate.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, *ToPaymentResponse(p))
	}
	return out, nil
}

// ListByTreatment devuelve los pagos de un tratamiento.
func (uc *PaymentUseCase) ListByTreatment(ctx context.Context, clinicID, treatmentID string) ([]dto.PaymentResponse, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, t := range snap.Treatments {
		if t.ID == treatmentID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NotFound("tratamiento")
	}
	out := make([]dto.PaymentResponse, 0)
	for _, p := range snap.Payments {
		if p.TreatmentID == treatmentID {
			out = append(out, *ToPaymentResponse(p))
		}
	}
	return out, nil
}

func (uc *PaymentUseCase) patientName(ctx context.Context, patientID string) string {
	p, err := uc.patientRepo.GetByID(ctx, patientID)
	if err != nil || p == nil {
		return ""
	}
	return p.Name
}

// ToPaymentResponse convierte un pago en DTO.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		TreatmentID: p.TreatmentID,
		PatientID:   p.PatientID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(dto.DateLayout),
		Method:      p.Method,
		Status:      p.Status,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
