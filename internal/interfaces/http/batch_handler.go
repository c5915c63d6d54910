package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/acero-erp/internal/application/dto"
	appvaluation "github.com/tu-usuario/acero-erp/internal/application/valuation"
	"github.com/tu-usuario/acero-erp/internal/domain"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/excel"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/metrics"
)

// BatchHandler maneja las consultas de lotes y valoración (protegido).
type BatchHandler struct {
	uc       *appvaluation.BatchValuationUseCase
	exporter *excel.LedgerExporter
	mets     *metrics.Collectors
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *appvaluation.BatchValuationUseCase, exporter *excel.LedgerExporter, mets *metrics.Collectors) *BatchHandler {
	return &BatchHandler{uc: uc, exporter: exporter, mets: mets}
}

// mapDomainError traduce los sentinelas de dominio a respuestas HTTP.
// ErrBatchSourceUnavailable es 503, nunca un 200 con ceros: el cliente debe
// poder distinguir "sin stock" de "no se pudo determinar el stock".
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "remanente insuficiente en el lote"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación viola el estado del lote"})
	case errors.Is(err, domain.ErrBatchSourceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: "el origen de lotes no está disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ListBatches godoc
// @Summary      Ledger de lotes del producto en orden FIFO
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true   "ID del producto"
// @Param        channel           query  string  false  "LOCAL | IMPORTED (vacío = todos)"
// @Param        warehouse_id      query  string  false  "Filtrar por bodega"
// @Param        has_stock         query  bool    false  "true (default) = solo lotes activos; false incluye agotados (solo presentación)"
// @Success      200  {object}  dto.BatchListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches [get]
func (h *BatchHandler) ListBatches(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter, err := appvaluation.ParseChannelFilter(c.Query("channel"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "channel debe ser LOCAL o IMPORTED"})
	}

	// has_stock=false agrega los agotados a la respuesta; la valoración nunca
	// los cuenta, es un flag de presentación.
	includeDepleted := !c.QueryBool("has_stock", true)
	resp, err := h.uc.ListBatches(c.Context(), companyID, c.Params("id"), c.Query("warehouse_id"),
		filter, includeDepleted)
	if err != nil {
		return mapDomainError(c, err)
	}
	h.mets.ValuationRequests.WithLabelValues("batches").Inc()
	return c.JSON(resp)
}

// GetValuation godoc
// @Summary      Rollup de valoración del producto (conjunto activo)
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.ValuationRollupDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/valuation [get]
func (h *BatchHandler) GetValuation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rollup, err := h.uc.GetValuation(c.Context(), companyID, c.Params("id"), c.Query("warehouse_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	h.mets.ValuationRequests.WithLabelValues("valuation").Inc()
	return c.JSON(rollup)
}

// GetProcurementSummary godoc
// @Summary      Cantidades por canal de adquisición del producto
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.ProcurementSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/procurement-summary [get]
func (h *BatchHandler) GetProcurementSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	summary, err := h.uc.GetProcurementSummary(c.Context(), companyID, c.Params("id"), c.Query("warehouse_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	h.mets.ValuationRequests.WithLabelValues("procurement-summary").Inc()
	return c.JSON(summary)
}

// ExportLedger godoc
// @Summary      Exportar el ledger del producto a Excel
// @Description  Libro .xlsx con el ledger en orden FIFO (agotados incluidos)
//
//	y la fila de totales del rollup, para conciliación contable.
//
// @Tags         batches
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id            path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches/export [get]
func (h *BatchHandler) ExportLedger(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")
	warehouseID := c.Query("warehouse_id")

	list, err := h.uc.ListBatches(c.Context(), companyID, productID, warehouseID, appvaluation.FilterAll, true)
	if err != nil {
		return mapDomainError(c, err)
	}
	rollup, err := h.uc.GetValuation(c.Context(), companyID, productID, warehouseID)
	if err != nil {
		return mapDomainError(c, err)
	}

	data, err := h.exporter.Export(list, rollup)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="lotes-%s.xlsx"`, productID))
	return c.Send(data)
}
