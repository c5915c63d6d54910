package http

import (
	"github.com/gofiber/fiber/v2"
	appinventory "github.com/tu-usuario/acero-erp/internal/application/inventory"
	appvaluation "github.com/tu-usuario/acero-erp/internal/application/valuation"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/excel"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ValuationUC *appvaluation.BatchValuationUseCase
	AdjustUC    *appinventory.AdjustBatchUseCase
	Adjustments AdjustmentLister
	Exporter    *excel.LedgerExporter
	Metrics     *metrics.Collectors
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas de lotes requieren
// Bearer Token; ajustar lotes además requiere rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Consultas de lotes y valoración por producto
	products := protected.Group("/products")
	batchHandler := NewBatchHandler(deps.ValuationUC, deps.Exporter, deps.Metrics)
	products.Get("/:id/batches", batchHandler.ListBatches)
	products.Get("/:id/batches/export", batchHandler.ExportLedger)
	products.Get("/:id/valuation", batchHandler.GetValuation)
	products.Get("/:id/procurement-summary", batchHandler.GetProcurementSummary)

	// Mutaciones y auditoría de lotes
	batches := protected.Group("/batches")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustUC, deps.Adjustments)
	batches.Post("/:id/adjustments", RequireRole("admin", "bodeguero"), adjustmentHandler.AdjustBatch)
	batches.Get("/:id/adjustments", adjustmentHandler.ListAdjustments)
}
