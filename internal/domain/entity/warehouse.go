package entity

// Warehouse ubicación física donde se almacena un producto.
type Warehouse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Warehouses bodegas conocidas; la primera es la bodega por defecto.
var Warehouses = []Warehouse{
	{ID: "WH-01", Name: "Main Warehouse", Location: "Mumbai"},
	{ID: "WH-02", Name: "North Hub", Location: "Delhi"},
	{ID: "WH-03", Name: "South Depot", Location: "Bengaluru"},
}

// DefaultWarehouseID bodega asignada a productos importados.
func DefaultWarehouseID() string {
	return Warehouses[0].ID
}

// WarehouseName devuelve el nombre de la bodega o "Unknown".
func WarehouseName(id string) string {
	for _, w := range Warehouses {
		if w.ID == id {
			return w.Name
		}
	}
	return "Unknown"
}
