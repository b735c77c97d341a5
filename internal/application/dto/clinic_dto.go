package dto

import "time"

// UpsertClinicRequest body para PUT /api/clinic.
type UpsertClinicRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// ClinicResponse datos de la clínica.
type ClinicResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	UpdatedAt    time.Time `json:"updated_at"`
}
