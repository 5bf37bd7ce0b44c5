package entity

// Tipos de contraparte.
const (
	PartnerSupplier = "SUPPLIER"
	PartnerCustomer = "CUSTOMER"
)

// Partner proveedor o cliente del directorio.
type Partner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin,omitempty"`
	Address string `json:"address,omitempty"`
}
