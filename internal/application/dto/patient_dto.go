package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePatientRequest body para POST /api/patients.
type CreatePatientRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Residence string `json:"residence"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// UpdatePatientRequest body para PUT /api/patients/:id (campos opcionales).
type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
	Residence *string `json:"residence"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}

// PatientResponse ficha del paciente con su saldo derivado.
type PatientResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Age                   int             `json:"age"`
	Gender                string          `json:"gender"`
	Residence             string          `json:"residence"`
	Phone                 string          `json:"phone,omitempty"`
	Email                 string          `json:"email,omitempty"`
	Address               string          `json:"address,omitempty"`
	TotalOutstanding      decimal.Decimal `json:"total_outstanding"`
	HasOutstandingBalance bool            `json:"has_outstanding_balance"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// PatientBalanceResponse estado de cuenta del paciente.
type PatientBalanceResponse struct {
	PatientID             string          `json:"patient_id"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	TotalOwed             decimal.Decimal `json:"total_owed"`
	Status                string          `json:"status"`
	HasOutstandingBalance bool            `json:"has_outstanding_balance"`
	Treatments            int             `json:"treatments"`
}
