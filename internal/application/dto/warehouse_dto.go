package dto

// WarehouseResponse bodega con su ocupación actual.
type WarehouseResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	SKUs     int    `json:"skus"`
	Units    int64  `json:"units"`
}
