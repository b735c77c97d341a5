package entity

import "time"

// Clinic representa la clínica (tenant) y sus datos de contacto para recibos y encabezados.
type Clinic struct {
	ID           string
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
