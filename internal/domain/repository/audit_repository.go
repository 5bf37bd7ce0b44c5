package repository

import "github.com/jhoicas/invenpro-api/internal/domain/entity"

// AuditRepository puerto de la bitácora (solo inserción, más reciente primero).
type AuditRepository interface {
	Prepend(entry *entity.AuditLogEntry) error
	List(limit int) ([]*entity.AuditLogEntry, error)
}
