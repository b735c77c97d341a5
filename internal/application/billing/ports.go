package billing

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye tratamientos y pagos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// ReceiptData agrupa todo lo que necesita el generador para el comprobante de un tratamiento.
type ReceiptData struct {
	Clinic    *entity.Clinic
	Patient   *entity.Patient
	Treatment *entity.Treatment
	Payments  []*entity.Payment
	Currency  string
}

// ReceiptPDFGenerator genera la representación gráfica (PDF) del comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
