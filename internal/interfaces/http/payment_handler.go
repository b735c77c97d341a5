package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/dto"
)

// PaymentHandler consulta de pagos de la clínica.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        patient_id  query     string  false  "Filtrar por paciente"
// @Param        start_date  query     string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date    query     string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200         {object}  dto.ListResponse[dto.PaymentResponse]
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var f dto.PaymentFilter
	if err := c.QueryParser(&f); err != nil {
		return badParams(c)
	}
	list, err := h.uc.List(c.Context(), GetClinicID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}
