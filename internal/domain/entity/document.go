package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento comercial.
type DocumentType string

// Los ocho tipos emitibles desde el espacio de facturación.
const (
	DocPurchaseBill    DocumentType = "PURCHASE_BILL"
	DocSalesBill       DocumentType = "SALES_BILL"
	DocGRN             DocumentType = "GRN"
	DocPurchaseOrder   DocumentType = "PO"
	DocSalesOrder      DocumentType = "SO"
	DocDeliveryChallan DocumentType = "DELIVERY_CHALLAN"
	DocAdjustmentBill  DocumentType = "ADJUSTMENT_BILL"
	DocCreditDebitNote DocumentType = "CREDIT_DEBIT_NOTE"
)

// Notas separadas que también reconoce la tabla de clasificación.
const (
	DocCreditNote DocumentType = "CREDIT_NOTE"
	DocDebitNote  DocumentType = "DEBIT_NOTE"
)

// DocumentTypes lista los tipos aceptados por el espacio de facturación.
var DocumentTypes = []DocumentType{
	DocPurchaseBill, DocSalesBill, DocGRN, DocPurchaseOrder, DocSalesOrder,
	DocDeliveryChallan, DocAdjustmentBill, DocCreditDebitNote,
	DocCreditNote, DocDebitNote,
}

// Valid indica si el tipo es conocido.
func (t DocumentType) Valid() bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Estados de pago.
const (
	PaymentPaid    = "PAID"
	PaymentCredit  = "CREDIT"
	PaymentPending = "PENDING"
)

// ValidPaymentStatus indica si el estado de pago es conocido.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPaid || s == PaymentCredit || s == PaymentPending
}

// LineItem línea del documento con una copia de los datos del producto al momento de emitir.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	UOM       string          `json:"uom"`
}

// Document registro inmutable del libro de documentos.
type Document struct {
	ID                 string          `json:"id"`
	DocType            DocumentType    `json:"docType"`
	DocNo              string          `json:"docNo"`
	PartnerName        string          `json:"partnerName"`
	PartnerContact     string          `json:"partnerContact"`
	GSTIN              string          `json:"gstin,omitempty"`
	BillingAddress     string          `json:"billingAddress,omitempty"`
	PaymentStatus      string          `json:"paymentStatus"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
	Timestamp          time.Time       `json:"timestamp"`
	VehicleNo          string          `json:"vehicleNo,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Items              []LineItem      `json:"items"`
}
