package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var _ repository.ClinicRepository = (*ClinicRepo)(nil)

// ClinicRepo implementación del puerto ClinicRepository sobre PostgreSQL.
type ClinicRepo struct {
	q Querier
}

// NewClinicRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClinicRepository(q Querier) *ClinicRepo {
	return &ClinicRepo{q: q}
}

// GetByID obtiene la clínica por ID.
func (r *ClinicRepo) GetByID(ctx context.Context, id string) (*entity.Clinic, error) {
	query := `
		SELECT id, name, address, contact_email, contact_phone, created_at, updated_at
		FROM clinics WHERE id = $1`
	var c entity.Clinic
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.ContactEmail, &c.ContactPhone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinic: %w", err)
	}
	return &c, nil
}

// Upsert crea o reemplaza los datos de la clínica; created_at se conserva.
func (r *ClinicRepo) Upsert(ctx context.Context, c *entity.Clinic) error {
	query := `
		INSERT INTO clinics (id, name, address, contact_email, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, address = EXCLUDED.address, contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.ContactEmail, c.ContactPhone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert clinic: %w", err)
	}
	return nil
}
