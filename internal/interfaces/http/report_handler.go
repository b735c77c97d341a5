package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Clinica-api/internal/application/analytics"
	"github.com/jhoicas/Clinica-api/internal/application/dto"
)

// ReportHandler maneja los reportes financieros, de inventario y de pacientes.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) period(c *fiber.Ctx) (dto.ReportRequest, bool) {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return req, false
	}
	return req, true
}

// Financial godoc
// @Summary      Reporte financiero
// @Description  Ingresos diarios, total, promedio, medicamentos vs servicios y top 5 servicios.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query     string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query     string  false  "Fin del período (YYYY-MM-DD, inclusive). Default: hoy."
// @Success      200         {object}  dto.FinancialReportDTO
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/financial [get]
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	req, ok := h.period(c)
	if !ok {
		return badParams(c)
	}
	report, err := h.uc.Financial(c.Context(), GetClinicID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// FinancialCSV godoc
// @Summary      Reporte financiero en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query     string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Fin del período (YYYY-MM-DD, inclusive)"
// @Success      200         {file}    binary
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/financial.csv [get]
func (h *ReportHandler) FinancialCSV(c *fiber.Ctx) error {
	req, ok := h.period(c)
	if !ok {
		return badParams(c)
	}
	data, filename, err := h.uc.FinancialCSV(c.Context(), GetClinicID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Description  Valor por categoría, productos más usados, movimientos diarios y transacciones recientes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query     string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Fin del período (YYYY-MM-DD, inclusive)"
// @Success      200         {object}  dto.InventoryReportDTO
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	req, ok := h.period(c)
	if !ok {
		return badParams(c)
	}
	report, err := h.uc.Inventory(c.Context(), GetClinicID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Patients godoc
// @Summary      Reporte de pacientes
// @Description  Distribución por género y edad, visitas nuevas vs recurrentes por día.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query     string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Fin del período (YYYY-MM-DD, inclusive)"
// @Success      200         {object}  dto.PatientReportDTO
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/patients [get]
func (h *ReportHandler) Patients(c *fiber.Ctx) error {
	req, ok := h.period(c)
	if !ok {
		return badParams(c)
	}
	report, err := h.uc.Patients(c.Context(), GetClinicID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
