package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = `id, clinic_id, name, age, gender, residence, phone, email, address, created_at, updated_at`

// PatientRepo implementación del puerto PatientRepository sobre PostgreSQL.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create persiste un paciente nuevo.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClinicID, p.Name, p.Age, p.Gender, p.Residence, p.Phone, p.Email, p.Address, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID; (nil, nil) si no existe.
func (r *PatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	row := r.q.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// Update modifica la ficha completa salvo clinic_id y created_at.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients SET name = $2, age = $3, gender = $4, residence = $5, phone = $6, email = $7, address = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Age, p.Gender, p.Residence, p.Phone, p.Email, p.Address, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un paciente por ID.
func (r *PatientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("el paciente tiene tratamientos o pagos registrados")
		}
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// ListByClinic lista los pacientes de la clínica, más recientes primero.
func (r *PatientRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.Patient, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE clinic_id = $1 ORDER BY created_at DESC`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(&p.ID, &p.ClinicID, &p.Name, &p.Age, &p.Gender, &p.Residence, &p.Phone, &p.Email, &p.Address,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
