package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un tratamiento con sus pagos.
type ReceiptUseCase struct {
	treatmentRepo repository.TreatmentRepository
	patientRepo   repository.PatientRepository
	clinicRepo    repository.ClinicRepository
	paymentRepo   repository.PaymentRepository
	generator     ReceiptPDFGenerator
	currency      string
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	treatmentRepo repository.TreatmentRepository,
	patientRepo repository.PatientRepository,
	clinicRepo repository.ClinicRepository,
	paymentRepo repository.PaymentRepository,
	generator ReceiptPDFGenerator,
	currency string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		treatmentRepo: treatmentRepo,
		patientRepo:   patientRepo,
		clinicRepo:    clinicRepo,
		paymentRepo:   paymentRepo,
		generator:     generator,
		currency:      currency,
	}
}

// DownloadReceiptPDF carga tratamiento, paciente, clínica y pagos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el tratamiento no existe o es de otra clínica.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, clinicID, treatmentID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar tratamiento ─────────────────────────────────────────────────
	t, err := uc.treatmentRepo.GetByID(ctx, treatmentID)
	if err != nil {
		return nil, "", domain.Backend("comprobante: obtener tratamiento", err)
	}
	if t == nil || t.ClinicID != clinicID {
		return nil, "", domain.NotFound("tratamiento")
	}

	// ── 2. Cargar paciente ────────────────────────────────────────────────────
	patient, err := uc.patientRepo.GetByID(ctx, t.PatientID)
	if err != nil {
		return nil, "", domain.Backend("comprobante: obtener paciente", err)
	}
	if patient == nil {
		patient = &entity.Patient{ID: t.PatientID}
	}

	// ── 3. Cargar clínica (puede no estar configurada aún) ───────────────────
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, "", domain.Backend("comprobante: obtener clínica", err)
	}
	if clinic == nil {
		clinic = &entity.Clinic{ID: clinicID, Name: "Clínica"}
	}

	// ── 4. Cargar pagos ───────────────────────────────────────────────────────
	payments, err := uc.paymentRepo.ListByTreatment(ctx, treatmentID)
	if err != nil {
		return nil, "", domain.Backend("comprobante: obtener pagos", err)
	}

	// ── 5. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, ReceiptData{
		Clinic:    clinic,
		Patient:   patient,
		Treatment: t,
		Payments:  payments,
		Currency:  uc.currency,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("comprobante_%s_%s.pdf", t.Date.Format("20060102"), shortID(t.ID))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
