package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/acero-erp/internal/application/dto"
	appinventory "github.com/tu-usuario/acero-erp/internal/application/inventory"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// AdjustmentLister historial de ajustes de un lote. Lo satisface el
// repositorio de auditoría; el handler no necesita más.
type AdjustmentLister interface {
	ListByBatch(ctx context.Context, batchID string) ([]entity.BatchAdjustment, error)
}

// AdjustmentHandler maneja las mutaciones de cantidad de lotes (protegido,
// solo admin y bodeguero: vendedor consulta pero no ajusta).
type AdjustmentHandler struct {
	uc     *appinventory.AdjustBatchUseCase
	lister AdjustmentLister
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *appinventory.AdjustBatchUseCase, lister AdjustmentLister) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc, lister: lister}
}

// AdjustBatch godoc
// @Summary      Ajustar el remanente de un lote
// @Description  Aplica un delta de CONSUMPTION, TRANSFER o CORRECTION sobre
//
//	quantity_remaining, con bloqueo de fila y auditoría transaccional.
//
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.AdjustBatchRequest  true  "type, quantity_delta, reason"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/adjustments [post]
func (h *AdjustmentHandler) AdjustBatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AdjustBatch(c.Context(), companyID, userID, c.Params("id"), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste aplicado"})
}

// ListAdjustments godoc
// @Summary      Historial de ajustes de un lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {array}   dto.BatchAdjustmentDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/adjustments [get]
func (h *AdjustmentHandler) ListAdjustments(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	adjustments, err := h.lister.ListByBatch(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	out := make([]dto.BatchAdjustmentDTO, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.BatchAdjustmentDTO{
			ID:            a.ID,
			TransactionID: a.TransactionID,
			BatchID:       a.BatchID,
			Type:          a.Type,
			QuantityDelta: a.QuantityDelta,
			Reason:        a.Reason,
			CreatedAt:     a.CreatedAt.Format(time.RFC3339),
			CreatedBy:     a.CreatedBy,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}
