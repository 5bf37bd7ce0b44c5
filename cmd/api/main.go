package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/invenpro-api/internal/application/analytics"
	appaudit "github.com/jhoicas/invenpro-api/internal/application/audit"
	"github.com/jhoicas/invenpro-api/internal/application/auth"
	"github.com/jhoicas/invenpro-api/internal/application/billing"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/application/usecase"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	infraai "github.com/jhoicas/invenpro-api/internal/infrastructure/ai"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/cache"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/export"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invenpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/invenpro-api/internal/interfaces/http"
	"github.com/jhoicas/invenpro-api/pkg/config"
	"github.com/jhoicas/invenpro-api/pkg/logger"
)

// devPassword contraseña del operador cuando no hay hash configurado en development.
const devPassword = "invenpro"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento de las colecciones serializadas
	var (
		store repository.SnapshotStore
		index repository.DocumentIndex
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg, err := postgres.NewSnapshotStore(ctx, pool, cfg.Storage.Namespace)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar almacenamiento PostgreSQL")
		}
		store, index = pg, pg
	default:
		lite, err := sqlite.New(cfg.Storage.SQLitePath, cfg.Storage.Namespace)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.SQLitePath).Msg("abrir SQLite")
		}
		defer lite.Close()
		store = lite
	}

	state := memory.NewState(store, log.Component("state"))
	if err := state.Load(ctx, memory.DefaultSeed(time.Now())); err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}

	// Caché de insights (opcional)
	var insightCache ports.InsightCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, insights sin caché")
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			insightCache = cache.New(rdb, cfg.Storage.Namespace+"insights:", cfg.Redis.TTL)
		}
		cancel()
	}

	// Proveedor de IA; sin clave el asesor responde 503
	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "anthropic":
		if cfg.AI.AnthropicAPIKey != "" {
			llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, cfg.AI.AnthropicURL)
		}
	case "gemini":
		if cfg.AI.GeminiAPIKey != "" {
			llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.GeminiBaseURL)
		}
	}
	if llm == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("IA deshabilitada: falta la clave del proveedor")
	}

	passwordHash := cfg.Auth.PasswordHash
	if passwordHash == "" && cfg.App.Env == "development" {
		passwordHash, err = auth.HashPassword(devPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("generar hash de desarrollo")
		}
		log.Warn().Str("username", cfg.Auth.Username).Msg("OPERATOR_PASSWORD_HASH vacío, usando la contraseña de desarrollo")
	}

	sheet := export.NewXLSXWriter()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		GSTIN:   cfg.Company.GSTIN,
	})

	auditUC := appaudit.NewAuditUseCase(state, sheet)
	authUC := auth.NewAuthUseCase(auth.OperatorConfig{
		Username:     cfg.Auth.Username,
		PasswordHash: passwordHash,
		Name:         cfg.Auth.DisplayName,
		Role:         cfg.Auth.Role,
		PINs: map[string]string{
			auth.GateBilling:         cfg.Auth.BillingPIN,
			auth.GateAnalytics:       cfg.Auth.AnalyticsPIN,
			auth.GateStockAdjustment: cfg.Auth.AdjustmentPIN,
		},
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auditUC)

	commitUC := billing.NewCommitDocumentUseCase(state, log.Component("billing"))
	historyUC := billing.NewHistoryUseCase(state, sheet)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderPIN,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        inventory.NewCatalogUseCase(state, log.Component("catalog")),
		ImportUC:         inventory.NewImportUseCase(state, sheet, log.Component("import")),
		RegisterMovement: inventory.NewRegisterMovementUseCase(state),
		Replenishment:    inventory.NewReplenishmentUseCase(state),
		CommitDocument:   commitUC,
		Workspace:        billing.NewWorkspaceUseCase(state, commitUC),
		History:          historyUC,
		PDF:              billing.NewPDFUseCase(historyUC, pdfGenerator),
		PartnerUC:        billing.NewPartnerUseCase(state),
		AuditUC:          auditUC,
		DashboardUC:      appanalytics.NewDashboardUseCase(state, index),
		AIUC:             usecase.NewAIUseCase(llm, insightCache, state, log.Component("ai")),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
