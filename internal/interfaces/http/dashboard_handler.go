package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Clinica-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los totales de la clínica, los ingresos de los últimos 6 meses,
// los tratamientos recientes y los artículos con stock bajo.
// GET /api/dashboard/summary
//
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
