package repository

// Stores agrupa los cinco repositorios atados a una misma unidad de trabajo.
type Stores struct {
	Products  ProductRepository
	Movements StockMovementRepository
	Documents DocumentRepository
	Partners  PartnerRepository
	Audit     AuditRepository
}
