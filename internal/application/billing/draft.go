package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invenpro-api/internal/domain"
	domainbilling "github.com/jhoicas/invenpro-api/internal/domain/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/inventory"
)

// Draft borrador de documento del espacio de facturación (carrito + cabecera).
// No se persiste: solo el documento confirmado entra al libro.
type Draft struct {
	DocType            entity.DocumentType
	PartnerName        string
	PartnerContact     string
	GSTIN              string
	BillingAddress     string
	PaymentStatus      string
	DiscountPercentage decimal.Decimal
	TaxRate            decimal.Decimal
	VehicleNo          string
	Notes              string
	Items              []entity.LineItem
}

// NewDraft borrador vacío: venta, pagado, sin descuento y GST 18%.
func NewDraft() *Draft {
	return &Draft{
		DocType:       entity.DocSalesBill,
		PaymentStatus: entity.PaymentPaid,
		TaxRate:       domainbilling.DefaultTaxRate,
	}
}

func (d *Draft) indexOf(productID string) int {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem agrega una unidad del producto. En documentos que descuentan stock no se
// admite un producto sin existencias ni se supera la cantidad disponible.
// El precio inicial es el de compra en PURCHASE_BILL y el de venta en el resto.
func (d *Draft) AddItem(p *entity.Product) error {
	needsStock := inventory.IsStockReducing(d.DocType)
	if needsStock && p.Quantity <= 0 {
		return fmt.Errorf("%w: %s sin existencias", domain.ErrInsufficientStock, p.SKU)
	}

	if i := d.indexOf(p.ID); i >= 0 {
		if needsStock && d.Items[i].Quantity >= p.Quantity {
			return fmt.Errorf("%w: %s solo tiene %d", domain.ErrInsufficientStock, p.SKU, p.Quantity)
		}
		d.Items[i].Quantity++
		return nil
	}

	price := p.SellingPrice
	if d.DocType == entity.DocPurchaseBill {
		price = p.PurchasePrice
	}
	d.Items = append(d.Items, entity.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		HSN:       p.HSNCode,
		Quantity:  1,
		Price:     price,
		UOM:       p.UOM,
	})
	return nil
}

// UpdateQuantity suma delta a la línea; la cantidad nunca baja de 1.
func (d *Draft) UpdateQuantity(productID string, delta int64) error {
	i := d.indexOf(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	q := d.Items[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	d.Items[i].Quantity = q
	return nil
}

// SetPrice reemplaza el precio unitario de la línea.
func (d *Draft) SetPrice(productID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	i := d.indexOf(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	d.Items[i].Price = price
	return nil
}

// Remove quita la línea del producto.
func (d *Draft) Remove(productID string) error {
	i := d.indexOf(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	return nil
}

// Totals desglose actual del borrador.
func (d *Draft) Totals() domainbilling.Totals {
	return domainbilling.ComputeTotals(d.Items, d.DiscountPercentage, d.TaxRate)
}

// Validate reglas previas al commit.
func (d *Draft) Validate() error {
	return validateHeader(d.DocType, d.PartnerName, d.PaymentStatus, d.DiscountPercentage, d.TaxRate, d.Items)
}

var hundred = decimal.NewFromInt(100)

func validateHeader(t entity.DocumentType, partner, payment string, discount, tax decimal.Decimal, items []entity.LineItem) error {
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, t)
	}
	if partner == "" && t != entity.DocAdjustmentBill {
		return fmt.Errorf("%w: la contraparte es obligatoria", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentStatus(payment) {
		return fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, payment)
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return fmt.Errorf("%w: descuento fuera de rango", domain.ErrInvalidInput)
	}
	if tax.IsNegative() {
		return fmt.Errorf("%w: tarifa de impuesto negativa", domain.ErrInvalidInput)
	}
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad no positiva en %s", domain.ErrInvalidInput, it.ProductID)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: precio negativo en %s", domain.ErrInvalidInput, it.ProductID)
		}
	}
	return nil
}
