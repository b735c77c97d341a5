package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
)

// ClinicHandler datos de la clínica del token.
type ClinicHandler struct {
	uc *usecase.ClinicUseCase
}

// NewClinicHandler construye el handler.
func NewClinicHandler(uc *usecase.ClinicUseCase) *ClinicHandler {
	return &ClinicHandler{uc: uc}
}

// Get godoc
// @Summary      Datos de la clínica
// @Tags         clinic
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClinicResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/clinic [get]
func (h *ClinicHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar los datos de la clínica
// @Tags         clinic
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpsertClinicRequest  true  "name, address, contact_email, contact_phone"
// @Success      200   {object}  dto.ClinicResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/clinic [put]
func (h *ClinicHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertClinicRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Upsert(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
