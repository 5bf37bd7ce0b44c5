package billing_test

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
)

func line(productID string, qty int64, price string) dto.DocumentLineRequest {
	return dto.DocumentLineRequest{ProductID: productID, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestCommit_VentaDescuentaYConservaPrecioCompra(t *testing.T) {
	ctx := context.Background()
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	out, err := uc.Commit(ctx, owner, dto.CommitDocumentRequest{
		DocType:     string(entity.DocSalesBill),
		PartnerName: "Acme Retail",
		Items:       []dto.DocumentLineRequest{line("p1", 3, "8")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.MovementsCreated)

	l := readLedgers(t, st)
	assert.Equal(t, int64(7), l.products["p1"].Quantity)
	assert.Equal(t, "5", l.products["p1"].PurchasePrice.String())

	require.Len(t, l.movements, 1)
	assert.Equal(t, string(entity.DocSalesBill), l.movements[0].Type)
	assert.Equal(t, int64(3), l.movements[0].Quantity)
	assert.Equal(t, "Auto-logged from SALES_BILL "+out.Document.DocNo, l.movements[0].Reason)
	assert.Equal(t, "Producto p1", l.movements[0].ProductName, "el nombre se copia del catálogo")

	require.Len(t, l.docs, 1)
	require.Len(t, l.audit, 1)
	assert.Equal(t, entity.AuditDocGeneration, l.audit[0].Action)
	assert.Equal(t, fmt.Sprintf("Generated SALES_BILL [%s] for Acme Retail", out.Document.DocNo), l.audit[0].Details)
	assert.Equal(t, "Ravi (Owner)", l.audit[0].User)
}

func TestCommit_CompraSumaYSobrescribePrecio(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	_, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
		DocType:     string(entity.DocPurchaseBill),
		PartnerName: "Proveedor",
		Items:       []dto.DocumentLineRequest{line("p1", 5, "6")},
	})
	require.NoError(t, err)

	l := readLedgers(t, st)
	assert.Equal(t, int64(15), l.products["p1"].Quantity)
	assert.Equal(t, "6", l.products["p1"].PurchasePrice.String())
}

func TestCommit_OrdenDeCompraEsNeutra(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	out, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
		DocType:     string(entity.DocPurchaseOrder),
		PartnerName: "Proveedor",
		Items:       []dto.DocumentLineRequest{line("p1", 50, "6")},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.MovementsCreated)

	l := readLedgers(t, st)
	assert.Equal(t, int64(10), l.products["p1"].Quantity)
	assert.Empty(t, l.movements)
	assert.Len(t, l.docs, 1)
	assert.Len(t, l.audit, 1)
}

func TestCommit_ProductoAusenteSeOmite(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	out, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
		DocType:     string(entity.DocGRN),
		PartnerName: "Proveedor",
		Items:       []dto.DocumentLineRequest{line("ghost", 4, "1"), line("p1", 2, "5")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, out.SkippedItems)
	assert.Equal(t, 1, out.MovementsCreated)

	l := readLedgers(t, st)
	assert.Equal(t, int64(12), l.products["p1"].Quantity)
	assert.Len(t, l.movements, 1)
	assert.Len(t, l.docs[0].Items, 2, "el documento conserva todas sus líneas")
}

func TestCommit_NoEsIdempotente(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())
	req := dto.CommitDocumentRequest{
		DocType:     string(entity.DocCreditNote),
		PartnerName: "Cliente",
		Items:       []dto.DocumentLineRequest{line("p1", 4, "9")},
	}

	_, err := uc.Commit(context.Background(), owner, req)
	require.NoError(t, err)
	_, err = uc.Commit(context.Background(), owner, req)
	require.NoError(t, err)

	l := readLedgers(t, st)
	assert.Equal(t, int64(18), l.products["p1"].Quantity)
	assert.Len(t, l.movements, 2)
	assert.Len(t, l.docs, 2)
}

func TestCommit_NumeracionSecuencialPorTipoYAnio(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 100, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())
	year := time.Now().UTC().Year()

	var nums []string
	for _, tp := range []entity.DocumentType{entity.DocSalesBill, entity.DocSalesBill, entity.DocGRN} {
		out, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
			DocType:     string(tp),
			PartnerName: "X",
			Items:       []dto.DocumentLineRequest{line("p1", 1, "9")},
		})
		require.NoError(t, err)
		nums = append(nums, out.Document.DocNo)
	}
	assert.Equal(t, fmt.Sprintf("SB/%d/0001", year), nums[0])
	assert.Equal(t, fmt.Sprintf("SB/%d/0002", year), nums[1])
	assert.Equal(t, fmt.Sprintf("G/%d/0001", year), nums[2])
	assert.Regexp(t, regexp.MustCompile(`^[A-Z]+/\d{4}/\d{4}$`), nums[0])
}

func TestCommit_NumeracionRespetaLibroImportado(t *testing.T) {
	ctx := context.Background()
	year := time.Now().UTC().Year()

	// libro de otra herramienta: sufijos por marca de tiempo, sin orden ni continuidad
	imported := []entity.Document{
		{ID: "x1", DocType: entity.DocSalesBill, DocNo: fmt.Sprintf("SB/%d/0002", year), PartnerName: "Legacy"},
		{ID: "x2", DocType: entity.DocSalesBill, DocNo: fmt.Sprintf("SB/%d/4821", year), PartnerName: "Legacy"},
		{ID: "x3", DocType: entity.DocSalesBill, DocNo: fmt.Sprintf("SB/%d/A17", year), PartnerName: "Legacy"},
		{ID: "x4", DocType: entity.DocGRN, DocNo: fmt.Sprintf("G/%d/0009", year), PartnerName: "Legacy"},
	}
	blob, err := json.Marshal(imported)
	require.NoError(t, err)
	store := memory.NewSnapshotStore()
	require.NoError(t, store.Save(ctx, repository.KeyDocs, blob))

	st := memory.NewState(store, zerolog.Nop())
	require.NoError(t, st.Load(ctx, memory.Seed{Products: []entity.Product{product("p1", 100, "5", "9")}}))
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	var nums []string
	for _, tp := range []entity.DocumentType{entity.DocSalesBill, entity.DocSalesBill, entity.DocGRN} {
		out, err := uc.Commit(ctx, owner, dto.CommitDocumentRequest{
			DocType:     string(tp),
			PartnerName: "X",
			Items:       []dto.DocumentLineRequest{line("p1", 1, "9")},
		})
		require.NoError(t, err)
		nums = append(nums, out.Document.DocNo)
	}
	assert.Equal(t, fmt.Sprintf("SB/%d/4822", year), nums[0])
	assert.Equal(t, fmt.Sprintf("SB/%d/4823", year), nums[1])
	assert.Equal(t, fmt.Sprintf("G/%d/0010", year), nums[2])

	seen := map[string]bool{}
	for _, d := range readLedgers(t, st).docs {
		assert.False(t, seen[d.DocNo], "número repetido %s", d.DocNo)
		seen[d.DocNo] = true
	}
}

func TestCommit_TotalesYTarifaPorDefecto(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 10, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	out, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
		DocType:            string(entity.DocSalesOrder),
		PartnerName:        "Cliente",
		DiscountPercentage: decimal.NewFromInt(10),
		Items:              []dto.DocumentLineRequest{line("p1", 2, "50")},
	})
	require.NoError(t, err)
	doc := out.Document
	assert.Equal(t, "18", doc.TaxRate.String())
	assert.Equal(t, entity.PaymentPaid, doc.PaymentStatus)
	assert.Equal(t, "100", doc.Subtotal.String())
	assert.Equal(t, "16.2", doc.Tax.String())
	assert.Equal(t, "106.2", doc.Total.String())
}

func TestCommit_Validaciones(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 3, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CommitDocumentRequest
		err  error
	}{
		{"tipo desconocido", dto.CommitDocumentRequest{DocType: "INVOICE", PartnerName: "X", Items: []dto.DocumentLineRequest{line("p1", 1, "1")}}, domain.ErrInvalidInput},
		{"sin contraparte", dto.CommitDocumentRequest{DocType: "SALES_BILL", Items: []dto.DocumentLineRequest{line("p1", 1, "1")}}, domain.ErrInvalidInput},
		{"sin líneas", dto.CommitDocumentRequest{DocType: "SALES_BILL", PartnerName: "X"}, domain.ErrEmptyCart},
		{"cantidad cero", dto.CommitDocumentRequest{DocType: "GRN", PartnerName: "X", Items: []dto.DocumentLineRequest{line("p1", 0, "1")}}, domain.ErrInvalidInput},
		{"precio negativo", dto.CommitDocumentRequest{DocType: "GRN", PartnerName: "X", Items: []dto.DocumentLineRequest{line("p1", 1, "-1")}}, domain.ErrInvalidInput},
		{"stock insuficiente", dto.CommitDocumentRequest{DocType: "DELIVERY_CHALLAN", PartnerName: "X", Items: []dto.DocumentLineRequest{line("p1", 2, "1"), line("p1", 2, "1")}}, domain.ErrInsufficientStock},
		{"nota débito sobre existencia", dto.CommitDocumentRequest{DocType: "DEBIT_NOTE", PartnerName: "X", Items: []dto.DocumentLineRequest{line("p1", 4, "1")}}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Commit(ctx, owner, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	l := readLedgers(t, st)
	assert.Equal(t, int64(3), l.products["p1"].Quantity)
	assert.Empty(t, l.docs)
	assert.Empty(t, l.audit)
}

func TestCommit_AjusteSinContraparte(t *testing.T) {
	st := newState(t, seedData{products: []entity.Product{product("p1", 3, "5", "9")}})
	uc := billing.NewCommitDocumentUseCase(st, zerolog.Nop())

	out, err := uc.Commit(context.Background(), owner, dto.CommitDocumentRequest{
		DocType: string(entity.DocAdjustmentBill),
		Items:   []dto.DocumentLineRequest{line("p1", 2, "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), readLedgers(t, st).products["p1"].Quantity)
	assert.Contains(t, out.Document.DocNo, "AB/")
}
