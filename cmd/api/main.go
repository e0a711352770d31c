package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/ActivosTI-api/internal/application/auth"
	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/internal/application/requisition"
	"github.com/jhoicas/ActivosTI-api/internal/application/stock"
	"github.com/jhoicas/ActivosTI-api/internal/application/usecase"
	"github.com/jhoicas/ActivosTI-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/ActivosTI-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ActivosTI-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ActivosTI-api/internal/interfaces/http"
	"github.com/jhoicas/ActivosTI-api/pkg/config"
	"github.com/jhoicas/ActivosTI-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de tx). Los flujos
	// transaccionales reciben repos atados a la tx vía TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	itemRepo := postgres.NewCatalogItemRepository(pool)
	reqRepo := postgres.NewRequisitionRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	issuanceRepo := postgres.NewStockIssuanceRepository(pool)
	assetRepo := postgres.NewInventoryAssetRepository(pool)
	ticketRepo := postgres.NewMaintenanceTicketRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: SMTP real si está configurado, noop si no.
	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTP, log.Component("notify"))
	} else {
		notifier = notify.NewNoopNotifier(log.Component("notify"))
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	catalogUC := usecase.NewCatalogItemUseCase(itemRepo)
	requisitionUC := requisition.NewUseCase(txRunner, reqRepo, userRepo, itemRepo, notifier, log.Component("requisitions"))
	stockUC := stock.NewUseCase(txRunner, itemRepo, supplierRepo, userRepo, stockRepo, batchRepo)
	issuanceUC := issuance.NewUseCase(txRunner, userRepo, notifier)
	assetUC := usecase.NewAssetUseCase(txRunner, assetRepo)
	maintenanceUC := usecase.NewMaintenanceUseCase(txRunner, ticketRepo, assetRepo, userRepo)

	// PDF: acta de entrega del despacho
	voucherGen := infrapdf.NewMarotoVoucherGenerator()
	voucherSvc := issuance.NewVoucherService(reqRepo, issuanceRepo, itemRepo, userRepo, assetRepo, voucherGen)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ActivosTI API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		SupplierUC:    supplierUC,
		CatalogUC:     catalogUC,
		RequisitionUC: requisitionUC,
		StockUC:       stockUC,
		IssuanceUC:    issuanceUC,
		VoucherSvc:    voucherSvc,
		AssetUC:       assetUC,
		MaintenanceUC: maintenanceUC,
		JWTSecret:     cfg.JWT.Secret,
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
