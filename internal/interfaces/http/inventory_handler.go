package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
)

const (
	defaultRecentTransactions = 50
	maxRecentTransactions     = 500
)

// InventoryHandler maneja artículos, el libro de transacciones, alertas y reposición (protegido).
type InventoryHandler struct {
	items         *inventory.ItemUseCase
	ledger        *inventory.RegisterTransactionUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemUseCase, ledger *inventory.RegisterTransactionUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{items: items, ledger: ledger, replenishment: replenishment}
}

// CreateItem godoc
// @Summary      Crear artículo de inventario
// @Description  El stock inicial (> 0) se registra como una entrada "Stock inicial" en el libro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "name, category (medication|supply|equipment), unit, unit_cost, reorder_level, initial_stock"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.items.Create(c.Context(), GetClinicID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Listar artículos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category   query     string  false  "medication | supply | equipment"
// @Param        low_stock  query     bool    false  "Solo artículos en o bajo el nivel de reorden"
// @Param        q          query     string  false  "Buscar por nombre o proveedor"
// @Success      200        {object}  dto.ListResponse[dto.ItemResponse]
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var f dto.ItemFilter
	if err := c.QueryParser(&f); err != nil {
		return badParams(c)
	}
	list, err := h.items.List(c.Context(), GetClinicID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetItem godoc
// @Summary      Obtener artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.items.GetByID(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar artículo (no modifica el stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del artículo"
// @Param        body  body      dto.UpdateItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.items.Update(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar artículo y su historial (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ItemHistory godoc
// @Summary      Historial de transacciones de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.ListResponse[dto.TransactionResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/transactions [get]
func (h *InventoryHandler) ItemHistory(c *fiber.Ctx) error {
	list, err := h.ledger.HistoryResponse(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// RecordTransaction godoc
// @Summary      Registrar transacción de inventario
// @Description  addition suma, deduction resta (falla con INSUFFICIENT_STOCK si no alcanza), adjustment fija el saldo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordTransactionRequest  true  "inventory_item_id, type, quantity, reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.RecordFromRequest(c.Context(), GetClinicID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecentTransactions godoc
// @Summary      Últimas transacciones de la clínica
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query     int  false  "Máximo de filas (default 50, max 500)"
// @Success      200    {object}  dto.ListResponse[dto.TransactionResponse]
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) RecentTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultRecentTransactions)
	if limit <= 0 {
		limit = defaultRecentTransactions
	}
	if limit > maxRecentTransactions {
		limit = maxRecentTransactions
	}
	list, err := h.items.RecentTransactions(c.Context(), GetClinicID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Alerts godoc
// @Summary      Alertas de inventario
// @Description  low (stock ≤ nivel de reorden), expired y expiring.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockAlertDTO]
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	list, err := h.items.Alerts(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Artículos en o bajo el nivel de reorden con la cantidad sugerida de pedido.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReplenishmentSuggestionDTO]
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}
