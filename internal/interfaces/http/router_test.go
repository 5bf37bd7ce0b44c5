package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invenpro-api/internal/application/analytics"
	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/auth"
	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/application/usecase"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/export"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/invenpro-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/invenpro-api/pkg/jwt"
)

const testPassword = "invenpro-demo"

// newTestServer arma la API completa sobre el estado en memoria con el catálogo de demostración.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	st := memory.NewState(memory.NewSnapshotStore(), log)
	require.NoError(t, st.Load(context.Background(), memory.DefaultSeed(time.Now())))

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	sheet := export.NewXLSXWriter()
	auditUC := audit.NewAuditUseCase(st, sheet)
	authUC := auth.NewAuthUseCase(auth.OperatorConfig{
		Username:     testUsername,
		PasswordHash: hash,
		Name:         testName,
		Role:         entity.RoleOwner,
		PINs: map[string]string{
			auth.GateBilling:         "0000",
			auth.GateAnalytics:       "2222",
			auth.GateStockAdjustment: "0000",
		},
	}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, auditUC)

	commit := billing.NewCommitDocumentUseCase(st, log)
	history := billing.NewHistoryUseCase(st, sheet)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        inventory.NewCatalogUseCase(st, log),
		ImportUC:         inventory.NewImportUseCase(st, sheet, log),
		RegisterMovement: inventory.NewRegisterMovementUseCase(st),
		Replenishment:    inventory.NewReplenishmentUseCase(st),
		CommitDocument:   commit,
		Workspace:        billing.NewWorkspaceUseCase(st, commit),
		History:          history,
		PDF:              billing.NewPDFUseCase(history, pdf.NewMarotoPDFGenerator(pdf.Issuer{Name: "Test Traders"})),
		PartnerUC:        billing.NewPartnerUseCase(st),
		AuditUC:          auditUC,
		DashboardUC:      analytics.NewDashboardUseCase(st, nil),
		AIUC:             usecase.NewAIUseCase(nil, nil, st, log),
		JWTSecret:        testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token, pin string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if pin != "" {
		req.Header.Set(apphttp.HeaderPIN, pin)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", "", dto.LoginRequest{Username: testUsername, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func productBySKU(t *testing.T, app *fiber.App, token, sku string) dto.ProductResponse {
	t.Helper()
	resp := call(t, app, http.MethodGet, "/api/products?search="+sku, token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.ProductResponse]
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	return list.Items[0]
}

func TestRouter_Health(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodGet, "/health", "", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", "", dto.LoginRequest{Username: testUsername, Password: "otra"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ListaProductosSembrados(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.ProductResponse]
	decode(t, resp, &list)
	assert.Equal(t, 4, list.Total)

	resp = call(t, app, http.MethodGet, "/api/products/no-existe", token, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_EmitirFacturaDescuentaStock(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)
	led := productBySKU(t, app, token, "LED-PNL-18")

	req := dto.CommitDocumentRequest{
		DocType:     string(entity.DocSalesBill),
		PartnerName: "Sharma Constructions",
		Items:       []dto.DocumentLineRequest{{ProductID: led.ID, Quantity: 10, Price: led.SellingPrice}},
	}

	resp := call(t, app, http.MethodPost, "/api/documents", token, "", req)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "sin PIN no se intenta la operación")

	resp = call(t, app, http.MethodPost, "/api/documents", token, "1234", req)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/documents", token, "0000", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CommitDocumentResponse
	decode(t, resp, &out)
	assert.Equal(t, 1, out.MovementsCreated)
	assert.NotEmpty(t, out.Document.DocNo)

	after := productBySKU(t, app, token, "LED-PNL-18")
	assert.Equal(t, led.Quantity-10, after.Quantity)

	resp = call(t, app, http.MethodGet, "/api/documents/"+out.Document.ID+"/pdf", token, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_HojaDeNegocioSoloOwner(t *testing.T) {
	app := newTestServer(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "ops", "Meera", entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := call(t, app, http.MethodGet, "/api/analytics/business-sheet", tok, "2222", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	owner := login(t, app)
	resp = call(t, app, http.MethodGet, "/api/analytics/business-sheet", owner, "2222", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_InsightsSinProveedor(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/ai/insights", token, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
