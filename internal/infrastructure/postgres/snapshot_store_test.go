package postgres_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invenpro-api/pkg/config"
)

// Requiere PostgreSQL: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/...
func newStore(t *testing.T) *postgres.SnapshotStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// namespace único por test para no pisar datos
	s, err := postgres.NewSnapshotStore(ctx, pool, "test_"+uuid.NewString()[:8]+"_")
	require.NoError(t, err)
	return s
}

func TestSnapshotStore_GuardarYCargar(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, repository.KeyProducts, []byte(`[{"id":"p1"}]`)))

	blobs, err := s.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(blobs[repository.KeyProducts]))
	assert.NotContains(t, blobs, repository.KeyAudit)
}

func TestSnapshotStore_IndexaDocumentos(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	docs := []entity.Document{
		{ID: "d1", DocType: entity.DocSalesBill, DocNo: "SB/2026/0001", PartnerName: "Acme", PaymentStatus: entity.PaymentPaid,
			Subtotal: decimal.NewFromInt(1000), Tax: decimal.NewFromInt(180), Total: decimal.NewFromInt(1180), Timestamp: time.Now().UTC()},
		{ID: "d2", DocType: entity.DocSalesBill, DocNo: "SB/2026/0002", PartnerName: "Acme", PaymentStatus: entity.PaymentCredit,
			Subtotal: decimal.NewFromInt(100), Tax: decimal.NewFromInt(18), Total: decimal.NewFromInt(118), Timestamp: time.Now().UTC()},
	}
	blob, err := json.Marshal(docs)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, repository.KeyDocs, blob))
	// guardar dos veces no duplica filas
	require.NoError(t, s.Save(ctx, repository.KeyDocs, blob))

	totals, err := s.TotalsByType(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, entity.DocSalesBill, totals[0].DocType)
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(1298)), totals[0].Total.String())
}

func TestSnapshotStore_IndexaSoloDocumentosNuevos(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := entity.Document{ID: "d1", DocType: entity.DocGRN, DocNo: "G/2026/0001", PartnerName: "Bharat", PaymentStatus: entity.PaymentPaid,
		Subtotal: decimal.NewFromInt(500), Tax: decimal.NewFromInt(90), Total: decimal.NewFromInt(590), Timestamp: time.Now().UTC()}
	blob, err := json.Marshal([]entity.Document{first})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, repository.KeyDocs, blob))

	// el libro antepone: el nuevo va primero y el ya indexado se mantiene
	second := first
	second.ID, second.DocNo = "d2", "G/2026/0002"
	blob, err = json.Marshal([]entity.Document{second, first})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, repository.KeyDocs, blob))

	totals, err := s.TotalsByType(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(1180)), totals[0].Total.String())
}
