package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc       *inventory.CatalogUseCase
	importer *inventory.ImportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.CatalogUseCase, importer *inventory.ImportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, importer: importer}
}

// Create godoc
// @Summary      Registrar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos (más reciente primero)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Nombre o SKU"
// @Param        category   query  string  false  "Categoría"
// @Param        low_stock  query  bool    false  "Solo stock bajo"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), repository.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		LowStock: c.QueryBool("low_stock", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.ProductResponse]{Items: items, Total: len(items)})
}

// Categories lista las categorías presentes en el catálogo.
// GET /api/products/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetOperator(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el producto sin verificar referencias.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOperator(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// QuickRestock suma unidades al producto.
// POST /api/products/:id/restock
func (h *ProductHandler) QuickRestock(c *fiber.Ctx) error {
	var in dto.QuickRestockRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.QuickRestock(c.Context(), GetOperator(c), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar productos desde CSV
// @Description  Acepta multipart (campo "file") o el CSV crudo en el cuerpo.
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
		}
		defer f.Close()
		r = f
	} else {
		r = bytes.NewReader(c.Body())
	}
	out, err := h.importer.ImportCSV(c.Context(), GetOperator(c), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Template descarga la plantilla CSV de importación.
// GET /api/products/template
func (h *ProductHandler) Template(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, mimeCSV)
	c.Attachment("inventory_template.csv")
	return c.Send(inventory.Template())
}

// Export descarga el catálogo como CSV (por defecto) o XLSX (?format=xlsx).
// GET /api/products/export
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if c.Query("format") == "xlsx" {
		if err := h.importer.ExportXLSX(c.Context(), &buf); err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, mimeXLSX)
		c.Attachment("inventory_export.xlsx")
		return c.Send(buf.Bytes())
	}
	if err := h.importer.ExportCSV(c.Context(), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeCSV)
	c.Attachment("inventory_export.csv")
	return c.Send(buf.Bytes())
}
