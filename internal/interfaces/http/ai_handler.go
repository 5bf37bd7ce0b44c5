package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/usecase"
)

// AIHandler asesor de IA de solo lectura (protegido).
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// GetInsights godoc
// @Summary      Insights de inventario
// @Description  Hasta 4 observaciones con severidad low | medium | high. Un fallo del proveedor
//
//	devuelve la lista vacía con el campo error, no un error HTTP.
//
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightsResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ai/insights [get]
func (h *AIHandler) GetInsights(c *fiber.Ctx) error {
	out, err := h.uc.GetInsights(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Chat godoc
// @Summary      Preguntar al asesor de inventario
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Chat(c.Context(), in)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(out)
}

// DescribeProduct sugiere la descripción de un producto.
// POST /api/ai/describe
func (h *AIHandler) DescribeProduct(c *fiber.Ctx) error {
	var in dto.DescribeProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.DescribeProduct(c.Context(), in)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(out)
}

// aiError el timeout del proveedor se informa como 408; el resto pasa por writeError.
func aiError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
		})
	}
	return writeError(c, err)
}
