package memory

import (
	"strings"
	"time"

	"github.com/jhoicas/invenpro-api/internal/domain"
	domainbilling "github.com/jhoicas/invenpro-api/internal/domain/billing"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que los repositorios implementan los puertos.
var (
	_ repository.ProductRepository       = (*productRepo)(nil)
	_ repository.StockMovementRepository = (*movementRepo)(nil)
	_ repository.DocumentRepository      = (*documentRepo)(nil)
	_ repository.PartnerRepository       = (*partnerRepo)(nil)
	_ repository.AuditRepository         = (*auditRepo)(nil)
)

// dataset contiene las cinco colecciones, todas ordenadas de más reciente a más antigua.
// Se guardan valores: los repositorios devuelven copias y reemplazan en Update,
// así clone() puede ser una copia superficial de los slices.
type dataset struct {
	products  []entity.Product
	movements []entity.StockMovement
	docs      []entity.Document
	partners  []entity.Partner
	audit     []entity.AuditLogEntry
	dirty     map[string]bool
}

func newDataset() *dataset {
	return &dataset{dirty: make(map[string]bool)}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		products:  append([]entity.Product(nil), d.products...),
		movements: append([]entity.StockMovement(nil), d.movements...),
		docs:      append([]entity.Document(nil), d.docs...),
		partners:  append([]entity.Partner(nil), d.partners...),
		audit:     append([]entity.AuditLogEntry(nil), d.audit...),
		dirty:     make(map[string]bool),
	}
}

func (d *dataset) stores() repository.Stores {
	return repository.Stores{
		Products:  &productRepo{d: d},
		Movements: &movementRepo{d: d},
		Documents: &documentRepo{d: d},
		Partners:  &partnerRepo{d: d},
		Audit:     &auditRepo{d: d},
	}
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

type productRepo struct{ d *dataset }

func (r *productRepo) indexOf(id string) int {
	for i := range r.d.products {
		if r.d.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *productRepo) Create(p *entity.Product) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	if r.indexOf(p.ID) >= 0 {
		return domain.ErrDuplicate
	}
	r.d.products = append([]entity.Product{*p}, r.d.products...)
	r.d.dirty[repository.KeyProducts] = true
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	p := r.d.products[i]
	return &p, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	for i := range r.d.products {
		if strings.EqualFold(r.d.products[i].SKU, sku) {
			p := r.d.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	i := r.indexOf(p.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.d.products[i] = *p
	r.d.dirty[repository.KeyProducts] = true
	return nil
}

func (r *productRepo) ApplyQuantityDelta(id string, delta int64, at time.Time) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.d.products[i].Quantity += delta
	r.d.products[i].LastUpdated = at
	r.d.dirty[repository.KeyProducts] = true
	return nil
}

func (r *productRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Product, 0, len(r.d.products))
	for i := range r.d.products {
		p := r.d.products[i]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

// Delete elimina sin verificar referencias desde documentos o movimientos.
func (r *productRepo) Delete(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.d.products = append(r.d.products[:i:i], r.d.products[i+1:]...)
	r.d.dirty[repository.KeyProducts] = true
	return nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ d *dataset }

func (r *movementRepo) Prepend(movs ...*entity.StockMovement) error {
	if len(movs) == 0 {
		return nil
	}
	batch := make([]entity.StockMovement, 0, len(movs)+len(r.d.movements))
	for _, m := range movs {
		batch = append(batch, *m)
	}
	r.d.movements = append(batch, r.d.movements...)
	r.d.dirty[repository.KeyMovements] = true
	return nil
}

func (r *movementRepo) List(f repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	for i := range r.d.movements {
		m := r.d.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, &m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// ── Documentos ────────────────────────────────────────────────────────────────

type documentRepo struct{ d *dataset }

func (r *documentRepo) Prepend(doc *entity.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	r.d.docs = append([]entity.Document{*doc}, r.d.docs...)
	r.d.dirty[repository.KeyDocs] = true
	return nil
}

func (r *documentRepo) GetByID(id string) (*entity.Document, error) {
	for i := range r.d.docs {
		if r.d.docs[i].ID == id {
			doc := r.d.docs[i]
			return &doc, nil
		}
	}
	return nil, nil
}

func (r *documentRepo) GetByDocNo(docNo string) (*entity.Document, error) {
	for i := range r.d.docs {
		if r.d.docs[i].DocNo == docNo {
			doc := r.d.docs[i]
			return &doc, nil
		}
	}
	return nil, nil
}

func (r *documentRepo) List(f repository.DocumentFilter) ([]*entity.Document, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Document, 0, len(r.d.docs))
	for i := range r.d.docs {
		doc := r.d.docs[i]
		if f.DocType != "" && doc.DocType != f.DocType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(doc.DocNo), search) &&
			!strings.Contains(strings.ToLower(doc.PartnerName), search) {
			continue
		}
		out = append(out, &doc)
	}
	return out, nil
}

func (r *documentRepo) MaxSeqByPrefix(prefix string) (int, error) {
	top := 0
	for i := range r.d.docs {
		if seq, ok := domainbilling.ParseSeq(r.d.docs[i].DocNo, prefix); ok && seq > top {
			top = seq
		}
	}
	return top, nil
}

// ── Directorio ────────────────────────────────────────────────────────────────

type partnerRepo struct{ d *dataset }

func (r *partnerRepo) Create(p *entity.Partner) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	r.d.partners = append([]entity.Partner{*p}, r.d.partners...)
	r.d.dirty[repository.KeyEntities] = true
	return nil
}

func (r *partnerRepo) GetByID(id string) (*entity.Partner, error) {
	for i := range r.d.partners {
		if r.d.partners[i].ID == id {
			p := r.d.partners[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *partnerRepo) List(f repository.PartnerFilter) ([]*entity.Partner, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Partner, 0, len(r.d.partners))
	for i := range r.d.partners {
		p := r.d.partners[i]
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.GSTIN), search) {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (r *partnerRepo) Delete(id string) error {
	for i := range r.d.partners {
		if r.d.partners[i].ID == id {
			r.d.partners = append(r.d.partners[:i:i], r.d.partners[i+1:]...)
			r.d.dirty[repository.KeyEntities] = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Bitácora ──────────────────────────────────────────────────────────────────

type auditRepo struct{ d *dataset }

func (r *auditRepo) Prepend(e *entity.AuditLogEntry) error {
	if e == nil || e.ID == "" {
		return domain.ErrInvalidInput
	}
	r.d.audit = append([]entity.AuditLogEntry{*e}, r.d.audit...)
	r.d.dirty[repository.KeyAudit] = true
	return nil
}

func (r *auditRepo) List(limit int) ([]*entity.AuditLogEntry, error) {
	n := len(r.d.audit)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*entity.AuditLogEntry, 0, n)
	for i := 0; i < n; i++ {
		e := r.d.audit[i]
		out = append(out, &e)
	}
	return out, nil
}
