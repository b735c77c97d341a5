package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
)

// TreatmentHandler maneja tratamientos, sus pagos y el comprobante PDF.
type TreatmentHandler struct {
	create   *treatment.CreateTreatmentUseCase
	uc       *treatment.TreatmentUseCase
	payments *billing.PaymentUseCase
	receipts *billing.ReceiptUseCase
}

// NewTreatmentHandler construye el handler.
func NewTreatmentHandler(
	create *treatment.CreateTreatmentUseCase,
	uc *treatment.TreatmentUseCase,
	payments *billing.PaymentUseCase,
	receipts *billing.ReceiptUseCase,
) *TreatmentHandler {
	return &TreatmentHandler{create: create, uc: uc, payments: payments, receipts: receipts}
}

// Create godoc
// @Summary      Registrar tratamiento
// @Description  Congela el costo de cada medicamento y descuenta el stock en la misma transacción.
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTreatmentRequest  true  "patient_id, diagnosis, medications[], services[]"
// @Success      201   {object}  dto.TreatmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/treatments [post]
func (h *TreatmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTreatmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.create.CreateTreatment(c.Context(), GetClinicID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tratamiento
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del tratamiento"
// @Success      200  {object}  dto.TreatmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [get]
func (h *TreatmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar diagnóstico, notas o fechas
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "ID del tratamiento"
// @Param        body  body      dto.UpdateTreatmentRequest  true  "diagnosis, notes, date, due_date"
// @Success      200   {object}  dto.TreatmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [put]
func (h *TreatmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTreatmentRequest
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
// @Summary      Anular tratamiento sin pagos (solo admin)
// @Description  Devuelve al inventario los medicamentos descontados.
// @Tags         treatments
// @Security     Bearer
// @Param        id   path  string  true  "ID del tratamiento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [delete]
func (h *TreatmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyPayment godoc
// @Summary      Registrar pago de un tratamiento
// @Description  El monto se limita al saldo pendiente; el excedente se devuelve como change.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del tratamiento"
// @Param        body  body      dto.ApplyPaymentRequest  true  "amount, method, payment_date, notes"
// @Success      201   {object}  dto.ApplyPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/treatments/{id}/payments [post]
func (h *TreatmentHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.ApplyPayment(c.Context(), GetClinicID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF del tratamiento
// @Tags         treatments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID del tratamiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treatments/{id}/receipt [get]
func (h *TreatmentHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipts.DownloadReceiptPDF(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
