package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de un documento a emitir.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
	UOM       string          `json:"uom"`
}

// CommitDocumentRequest body para POST /api/documents.
// Si TaxRate es nil se usa la tarifa por defecto (18%).
type CommitDocumentRequest struct {
	DocType            string                `json:"doc_type" validate:"required"`
	PartnerName        string                `json:"partner_name" validate:"max=200"`
	PartnerContact     string                `json:"partner_contact" validate:"max=100"`
	GSTIN              string                `json:"gstin" validate:"max=20"`
	BillingAddress     string                `json:"billing_address" validate:"max=500"`
	PaymentStatus      string                `json:"payment_status" validate:"omitempty,oneof=PAID CREDIT PENDING"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	TaxRate            *decimal.Decimal      `json:"tax_rate"`
	VehicleNo          string                `json:"vehicle_no" validate:"max=30"`
	Notes              string                `json:"notes" validate:"max=1000"`
	Items              []DocumentLineRequest `json:"items" validate:"required,min=1,dive"`
}

// DraftHeaderRequest body para PUT /api/billing/workspace: cabecera del borrador.
type DraftHeaderRequest struct {
	DocType            string           `json:"doc_type" validate:"required"`
	PartnerID          string           `json:"partner_id"` // opcional: copia los datos del directorio
	PartnerName        string           `json:"partner_name" validate:"max=200"`
	PartnerContact     string           `json:"partner_contact" validate:"max=100"`
	GSTIN              string           `json:"gstin" validate:"max=20"`
	BillingAddress     string           `json:"billing_address" validate:"max=500"`
	PaymentStatus      string           `json:"payment_status" validate:"omitempty,oneof=PAID CREDIT PENDING"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	TaxRate            *decimal.Decimal `json:"tax_rate"`
	VehicleNo          string           `json:"vehicle_no" validate:"max=30"`
	Notes              string           `json:"notes" validate:"max=1000"`
}

// DraftAddItemRequest body para POST /api/billing/workspace/items.
type DraftAddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// DraftLineUpdateRequest body para PATCH /api/billing/workspace/items/:productId.
// Delta suma o resta unidades; Price reemplaza el precio unitario.
type DraftLineUpdateRequest struct {
	Delta *int64           `json:"delta"`
	Price *decimal.Decimal `json:"price"`
}

// TotalsResponse desglose monetario.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Taxable  decimal.Decimal `json:"taxable"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// DocumentLineResponse línea en respuestas.
type DocumentLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	UOM       string          `json:"uom"`
	Amount    decimal.Decimal `json:"amount"`
}

// DraftResponse estado del espacio de facturación del operador.
type DraftResponse struct {
	DocType            string                 `json:"doc_type"`
	PartnerName        string                 `json:"partner_name"`
	PartnerContact     string                 `json:"partner_contact"`
	GSTIN              string                 `json:"gstin,omitempty"`
	BillingAddress     string                 `json:"billing_address,omitempty"`
	PaymentStatus      string                 `json:"payment_status"`
	DiscountPercentage decimal.Decimal        `json:"discount_percentage"`
	TaxRate            decimal.Decimal        `json:"tax_rate"`
	VehicleNo          string                 `json:"vehicle_no,omitempty"`
	Notes              string                 `json:"notes,omitempty"`
	Items              []DocumentLineResponse `json:"items"`
	Totals             TotalsResponse         `json:"totals"`
}

// DocumentResponse documento del libro.
type DocumentResponse struct {
	ID                 string                 `json:"id"`
	DocType            string                 `json:"doc_type"`
	DocNo              string                 `json:"doc_no"`
	PartnerName        string                 `json:"partner_name"`
	PartnerContact     string                 `json:"partner_contact"`
	GSTIN              string                 `json:"gstin,omitempty"`
	BillingAddress     string                 `json:"billing_address,omitempty"`
	PaymentStatus      string                 `json:"payment_status"`
	DiscountPercentage decimal.Decimal        `json:"discount_percentage"`
	TaxRate            decimal.Decimal        `json:"tax_rate"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	Tax                decimal.Decimal        `json:"tax"`
	Total              decimal.Decimal        `json:"total"`
	Timestamp          time.Time              `json:"timestamp"`
	VehicleNo          string                 `json:"vehicle_no,omitempty"`
	Notes              string                 `json:"notes,omitempty"`
	Items              []DocumentLineResponse `json:"items"`
}

// CommitDocumentResponse resultado del commit: el documento y lo que el motor hizo.
type CommitDocumentResponse struct {
	Document         DocumentResponse `json:"document"`
	MovementsCreated int              `json:"movements_created"`
	SkippedItems     []string         `json:"skipped_items,omitempty"` // product_id sin producto en catálogo
}

// CreatePartnerRequest body para POST /api/partners.
type CreatePartnerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"required,oneof=SUPPLIER CUSTOMER"`
	Contact string `json:"contact" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	GSTIN   string `json:"gstin" validate:"max=20"`
	Address string `json:"address" validate:"max=500"`
}

// PartnerResponse proveedor o cliente.
type PartnerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin,omitempty"`
	Address string `json:"address,omitempty"`
}
