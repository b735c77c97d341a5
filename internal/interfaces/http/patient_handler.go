package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
)

// PatientHandler maneja las fichas de pacientes y sus vistas derivadas (saldo, tratamientos, pagos).
type PatientHandler struct {
	uc         *usecase.PatientUseCase
	treatments *treatment.TreatmentUseCase
	payments   *billing.PaymentUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *usecase.PatientUseCase, treatments *treatment.TreatmentUseCase, payments *billing.PaymentUseCase) *PatientHandler {
	return &PatientHandler{uc: uc, treatments: treatments, payments: payments}
}

// Create godoc
// @Summary      Registrar paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePatientRequest  true  "name, age, gender (male|female|other), residence, phone, email, address"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pacientes
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  false  "Buscar por nombre, residencia o teléfono"
// @Success      200  {object}  dto.ListResponse[dto.PatientResponse]
// @Router       /api/patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetClinicID(c), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Obtener paciente
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del paciente"
// @Success      200  {object}  dto.PatientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [get]
func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del paciente"
// @Param        body  body      dto.UpdatePatientRequest  true  "campos a modificar"
// @Success      200   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [put]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar paciente (solo admin, sin tratamientos)
// @Tags         patients
// @Security     Bearer
// @Param        id   path  string  true  "ID del paciente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [delete]
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Balance godoc
// @Summary      Saldo del paciente
// @Description  Total facturado, pagado y pendiente derivado de sus tratamientos.
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del paciente"
// @Success      200  {object}  dto.PatientBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/balance [get]
func (h *PatientHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Treatments godoc
// @Summary      Tratamientos del paciente
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del paciente"
// @Success      200  {object}  dto.ListResponse[dto.TreatmentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/treatments [get]
func (h *PatientHandler) Treatments(c *fiber.Ctx) error {
	list, err := h.treatments.ListByPatient(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Payments godoc
// @Summary      Pagos del paciente
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del paciente"
// @Success      200  {object}  dto.ListResponse[dto.PaymentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/payments [get]
func (h *PatientHandler) Payments(c *fiber.Ctx) error {
	clinicID, patientID := GetClinicID(c), c.Params("id")
	if _, err := h.uc.GetByID(c.Context(), clinicID, patientID); err != nil {
		return respondError(c, err)
	}
	list, err := h.payments.List(c.Context(), clinicID, dto.PaymentFilter{PatientID: patientID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}
