package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// DocumentHandler maneja la emisión, consulta y descarga de documentos (protegido).
type DocumentHandler struct {
	commit  *billing.CommitDocumentUseCase
	history *billing.HistoryUseCase
	pdf     *billing.PDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(commit *billing.CommitDocumentUseCase, history *billing.HistoryUseCase, pdf *billing.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{commit: commit, history: history, pdf: pdf}
}

// Commit godoc
// @Summary      Emitir documento
// @Description  Confirma el documento y aplica su efecto sobre catálogo, movimientos y bitácora
//
//	como una sola unidad. Requiere el PIN de facturación.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.CommitDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitDocumentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.commit.Commit(c.Context(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func documentFilter(c *fiber.Ctx) repository.DocumentFilter {
	return repository.DocumentFilter{
		DocType: entity.DocumentType(c.Query("type")),
		Search:  c.Query("search"),
	}
}

// List historial de documentos, más reciente primero.
// GET /api/documents?type=&search=
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	items, err := h.history.List(c.Context(), documentFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.DocumentResponse]{Items: items, Total: len(items)})
}

// GetByID detalle de un documento.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.history.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToDocumentResponse(doc))
}

// DownloadPDF representación imprimible del documento.
// GET /api/documents/:id/pdf
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadDocumentPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(data)
}

// Export historial como CSV (por defecto) o XLSX (?format=xlsx).
// GET /api/documents/export
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	f := documentFilter(c)
	if c.Query("format") == "xlsx" {
		data, err := h.history.ExportXLSX(c.Context(), f)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, mimeXLSX)
		c.Attachment("billing_history.xlsx")
		return c.Send(data)
	}
	var buf bytes.Buffer
	if err := h.history.ExportCSV(c.Context(), f, &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeCSV)
	c.Attachment("billing_history.csv")
	return c.Send(buf.Bytes())
}
