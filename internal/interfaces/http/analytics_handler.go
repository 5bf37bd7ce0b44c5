package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/analytics"
)

// AnalyticsHandler tablero, bodegas y hoja de negocio (protegido).
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Warehouses bodegas con SKUs y unidades.
// GET /api/warehouses
func (h *AnalyticsHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.Warehouses(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBusinessSheet godoc
// @Summary      Hoja de negocio
// @Description  Activos, ingreso proyectado, ventas, margen promedio y rendimiento por SKU.
//
//	Requiere el PIN de analítica.
//
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BusinessSheetDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/business-sheet [get]
func (h *AnalyticsHandler) GetBusinessSheet(c *fiber.Ctx) error {
	out, err := h.uc.GetBusinessSheet(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetTaxSummary acumulados de impuestos por tipo de documento.
// GET /api/analytics/tax-summary
func (h *AnalyticsHandler) GetTaxSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetTaxSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
