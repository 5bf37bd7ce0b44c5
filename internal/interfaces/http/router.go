package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/analytics"
	"github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/auth"
	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/application/usecase"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CatalogUC        *inventory.CatalogUseCase
	ImportUC         *inventory.ImportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	CommitDocument   *billing.CommitDocumentUseCase
	Workspace        *billing.WorkspaceUseCase
	History          *billing.HistoryUseCase
	PDF              *billing.PDFUseCase
	PartnerUC        *billing.PartnerUseCase
	AuditUC          *audit.UseCase
	DashboardUC      *analytics.DashboardUseCase
	AIUC             *usecase.AIUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/pin", authHandler.VerifyPIN)

	billingPIN := RequirePIN(auth.GateBilling, deps.AuthUC)
	analyticsPIN := RequirePIN(auth.GateAnalytics, deps.AuthUC)
	adjustmentPIN := RequirePIN(auth.GateStockAdjustment, deps.AuthUC)
	ownerOnly := RequireRole(entity.RoleOwner)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.ImportUC)
	products.Get("/categories", productHandler.Categories)
	products.Get("/template", productHandler.Template)
	products.Get("/export", productHandler.Export)
	products.Post("/import", productHandler.Import)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/restock", productHandler.QuickRestock)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", adjustmentPIN, inventoryHandler.RegisterMovement)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Documents (emisión con PIN de facturación)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.CommitDocument, deps.History, deps.PDF)
	documents.Get("/export", documentHandler.Export)
	documents.Get("/", documentHandler.List)
	documents.Post("/", billingPIN, documentHandler.Commit)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)

	// Billing workspace
	draft := protected.Group("/billing/draft", billingPIN)
	workspaceHandler := NewWorkspaceHandler(deps.Workspace)
	draft.Get("/", workspaceHandler.Get)
	draft.Put("/", workspaceHandler.SetHeader)
	draft.Delete("/", workspaceHandler.Reset)
	draft.Post("/items", workspaceHandler.AddItem)
	draft.Patch("/items/:productId", workspaceHandler.UpdateLine)
	draft.Delete("/items/:productId", workspaceHandler.RemoveItem)
	draft.Post("/commit", workspaceHandler.Commit)

	// Partners
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Get("/", partnerHandler.List)
	partners.Post("/", partnerHandler.Create)
	partners.Delete("/:id", partnerHandler.Delete)

	// Audit
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", auditHandler.List)
	protected.Get("/audit/export", auditHandler.Export)

	// Dashboard + analytics
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", analyticsHandler.GetSummary)
	protected.Get("/warehouses", analyticsHandler.Warehouses)
	protected.Get("/analytics/business-sheet", ownerOnly, analyticsPIN, analyticsHandler.GetBusinessSheet)
	protected.Get("/analytics/tax-summary", ownerOnly, analyticsPIN, analyticsHandler.GetTaxSummary)

	// AI
	aiHandler := NewAIHandler(deps.AIUC)
	protected.Get("/ai/insights", aiHandler.GetInsights)
	protected.Post("/ai/chat", aiHandler.Chat)
	protected.Post("/ai/describe", aiHandler.DescribeProduct)
}
