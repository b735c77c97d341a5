package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.TreatmentRepository = (*TreatmentRepo)(nil)

const treatmentColumns = `id, clinic_id, patient_id, diagnosis, notes, medications, services, date, due_date,
	total_cost, amount_paid, payment_status, created_by, created_at, updated_at`

// TreatmentRepo implementación del puerto TreatmentRepository sobre PostgreSQL.
// Medicamentos y servicios viajan como JSONB en la misma fila.
type TreatmentRepo struct {
	q Querier
}

// NewTreatmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreatmentRepository(q Querier) *TreatmentRepo {
	return &TreatmentRepo{q: q}
}

// Create persiste la cabecera con sus líneas embebidas.
func (r *TreatmentRepo) Create(ctx context.Context, t *entity.Treatment) error {
	meds, svcs, err := marshalLines(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO treatments (` + treatmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.ClinicID, t.PatientID, t.Diagnosis, t.Notes, meds, svcs, t.Date, t.DueDate,
		t.TotalCost, t.AmountPaid, t.PaymentStatus, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

// GetByID obtiene un tratamiento; (nil, nil) si no existe.
func (r *TreatmentRepo) GetByID(ctx context.Context, id string) (*entity.Treatment, error) {
	return r.get(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila para serializar pagos y anulaciones concurrentes.
func (r *TreatmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Treatment, error) {
	return r.get(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1 FOR UPDATE`, id)
}

func (r *TreatmentRepo) get(ctx context.Context, query, id string) (*entity.Treatment, error) {
	t, err := scanTreatment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return t, nil
}

// Update modifica diagnosis, notes, date y due_date. Costos y líneas quedan fijos.
func (r *TreatmentRepo) Update(ctx context.Context, t *entity.Treatment) error {
	query := `
		UPDATE treatments SET diagnosis = $2, notes = $3, date = $4, due_date = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, t.ID, t.Diagnosis, t.Notes, t.Date, t.DueDate, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update treatment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePayment fija el acumulado pagado y el estado derivado.
func (r *TreatmentRepo) UpdatePayment(ctx context.Context, id string, amountPaid decimal.Decimal, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE treatments SET amount_paid = $2, payment_status = $3, updated_at = now() WHERE id = $1`,
		id, amountPaid, status)
	if err != nil {
		return fmt.Errorf("update treatment payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un tratamiento por ID.
func (r *TreatmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	return nil
}

// ListByPatient lista los tratamientos del paciente, más recientes primero.
func (r *TreatmentRepo) ListByPatient(ctx context.Context, patientID string) ([]*entity.Treatment, error) {
	return r.list(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE patient_id = $1 ORDER BY date DESC`, patientID)
}

// ListByClinic lista los tratamientos de la clínica, más recientes primero.
func (r *TreatmentRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.Treatment, error) {
	return r.list(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE clinic_id = $1 ORDER BY date DESC`, clinicID)
}

func (r *TreatmentRepo) list(ctx context.Context, query, arg string) ([]*entity.Treatment, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTreatment(row pgx.Row) (*entity.Treatment, error) {
	var (
		t          entity.Treatment
		meds, svcs []byte
	)
	err := row.Scan(&t.ID, &t.ClinicID, &t.PatientID, &t.Diagnosis, &t.Notes, &meds, &svcs, &t.Date, &t.DueDate,
		&t.TotalCost, &t.AmountPaid, &t.PaymentStatus, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(meds) > 0 {
		if err := json.Unmarshal(meds, &t.Medications); err != nil {
			return nil, fmt.Errorf("decode medications: %w", err)
		}
	}
	if len(svcs) > 0 {
		if err := json.Unmarshal(svcs, &t.Services); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
	}
	return &t, nil
}

func marshalLines(t *entity.Treatment) (meds, svcs []byte, err error) {
	medications := t.Medications
	if medications == nil {
		medications = []entity.TreatmentMedication{}
	}
	services := t.Services
	if services == nil {
		services = []entity.TreatmentService{}
	}
	if meds, err = json.Marshal(medications); err != nil {
		return nil, nil, fmt.Errorf("encode medications: %w", err)
	}
	if svcs, err = json.Marshal(services); err != nil {
		return nil, nil, fmt.Errorf("encode services: %w", err)
	}
	return meds, svcs, nil
}
