package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
)

// AuditHandler consulta y exportación de la bitácora (protegido).
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List bitácora más reciente primero.
// GET /api/audit?limit=
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	items, err := h.uc.List(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.AuditLogResponse]{Items: items, Total: len(items)})
}

// Export bitácora como CSV (por defecto) o XLSX (?format=xlsx).
// GET /api/audit/export
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		data, err := h.uc.ExportXLSX(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, mimeXLSX)
		c.Attachment("audit_log.xlsx")
		return c.Send(data)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeCSV)
	c.Attachment("audit_log.csv")
	return c.Send(buf.Bytes())
}
