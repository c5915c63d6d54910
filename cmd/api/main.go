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
	appinventory "github.com/tu-usuario/acero-erp/internal/application/inventory"
	appvaluation "github.com/tu-usuario/acero-erp/internal/application/valuation"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/excel"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/legacy"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/metrics"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/acero-erp/internal/interfaces/http"
	"github.com/tu-usuario/acero-erp/internal/scheduler"
	"github.com/tu-usuario/acero-erp/pkg/config"
	"github.com/tu-usuario/acero-erp/pkg/logger"
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

	batchRepo := postgres.NewStockBatchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	adjustmentRepo := postgres.NewBatchAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mets := metrics.NewCollectors()
	valuationUC := appvaluation.NewBatchValuationUseCase(batchRepo, productRepo, log)
	adjustUC := appinventory.NewAdjustBatchUseCase(txRunner)
	exporter := excel.NewLedgerExporter()

	// Scheduler: ingesta del legado (si está configurado) + auditoría diaria.
	legacyClient := legacy.NewClient(cfg.Batches)
	sched := scheduler.New(cfg.Batches, legacyClient, batchRepo, batchRepo, mets, log)
	sched.Start()
	defer sched.Stop()

	// Servidor lateral de métricas, fuera del middleware de auth.
	if cfg.Metrics.Enabled {
		metricsSrv := metrics.NewServer(cfg.Metrics.Port)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

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
		Title:    "Acero ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ValuationUC: valuationUC,
		AdjustUC:    adjustUC,
		Adjustments: adjustmentRepo,
		Exporter:    exporter,
		Metrics:     mets,
		JWTSecret:   cfg.JWT.Secret,
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
