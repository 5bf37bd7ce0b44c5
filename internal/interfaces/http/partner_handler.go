package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// PartnerHandler directorio de proveedores y clientes (protegido).
type PartnerHandler struct {
	uc *billing.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *billing.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar proveedor o cliente
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "name, type (SUPPLIER | CUSTOMER), contact, email, gstin, address"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List directorio filtrado por tipo y búsqueda.
// GET /api/partners?type=&search=
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), repository.PartnerFilter{Type: c.Query("type"), Search: c.Query("search")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.PartnerResponse]{Items: items, Total: len(items)})
}

// Delete elimina la contraparte.
// DELETE /api/partners/:id
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOperator(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
