package entity

import "time"

// Géneros admitidos en la ficha del paciente.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient representa la ficha de un paciente de la clínica.
// El saldo pendiente no se almacena: se deriva de sus tratamientos al leer.
type Patient struct {
	ID        string
	ClinicID  string
	Name      string
	Age       int
	Gender    string
	Residence string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
