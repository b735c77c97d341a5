package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, clinic_id, treatment_id, patient_id, amount, payment_date, method, status, notes, created_by, created_at`

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (solo inserciones).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create registra un abono.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClinicID, p.TreatmentID, p.PatientID, p.Amount, p.PaymentDate, p.Method, p.Status, p.Notes,
		p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByTreatment lista los abonos de un tratamiento, más recientes primero.
func (r *PaymentRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE treatment_id = $1 ORDER BY payment_date DESC, created_at DESC`, treatmentID)
}

// ListByClinic lista los abonos de la clínica, más recientes primero.
func (r *PaymentRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE clinic_id = $1 ORDER BY payment_date DESC, created_at DESC`, clinicID)
}

func (r *PaymentRepo) list(ctx context.Context, query, arg string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.ClinicID, &p.TreatmentID, &p.PatientID, &p.Amount, &p.PaymentDate, &p.Method,
			&p.Status, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
