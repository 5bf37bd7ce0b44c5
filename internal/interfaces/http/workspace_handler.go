package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
)

// WorkspaceHandler expone el borrador de facturación del operador (protegido, PIN de facturación).
type WorkspaceHandler struct {
	uc *billing.WorkspaceUseCase
}

// NewWorkspaceHandler construye el handler.
func NewWorkspaceHandler(uc *billing.WorkspaceUseCase) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc}
}

// Get borrador actual con totales.
// GET /api/billing/draft
func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get(GetOperator(c)))
}

// SetHeader actualiza tipo, contraparte, estado de pago, descuento e impuesto.
// PUT /api/billing/draft
func (h *WorkspaceHandler) SetHeader(c *fiber.Ctx) error {
	var in dto.DraftHeaderRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetHeader(c.Context(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem agrega un producto al carrito (o suma uno si ya está).
// POST /api/billing/draft/items
func (h *WorkspaceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.DraftAddItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddItem(c.Context(), GetOperator(c), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine ajusta cantidad (delta) o precio de una línea.
// PATCH /api/billing/draft/items/:productId
func (h *WorkspaceHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.DraftLineUpdateRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateLine(GetOperator(c), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem quita una línea del carrito.
// DELETE /api/billing/draft/items/:productId
func (h *WorkspaceHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(GetOperator(c), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset descarta el borrador.
// DELETE /api/billing/draft
func (h *WorkspaceHandler) Reset(c *fiber.Ctx) error {
	h.uc.Reset(GetOperator(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Commit confirma el borrador como documento.
// POST /api/billing/draft/commit
func (h *WorkspaceHandler) Commit(c *fiber.Ctx) error {
	out, err := h.uc.Commit(c.Context(), GetOperator(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
