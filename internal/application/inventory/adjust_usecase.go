// Package inventory contiene las mutaciones transaccionales sobre lotes:
// consumos, traslados y correcciones de conteo, siempre con bloqueo de fila
// y registro de auditoría en la misma transacción.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/acero-erp/internal/application/dto"
	"github.com/tu-usuario/acero-erp/internal/domain"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/repository"
)

// AdjustBatchUseCase muta QuantityRemaining de un lote de forma transaccional
// (SELECT FOR UPDATE + auditoría + Commit/Rollback). Es la única vía de
// escritura sobre el remanente: el canal, el costo y la cantidad recibida del
// lote son inmutables después del alta.
type AdjustBatchUseCase struct {
	txRunner TxRunner
}

// NewAdjustBatchUseCase construye el caso de uso.
func NewAdjustBatchUseCase(txRunner TxRunner) *AdjustBatchUseCase {
	return &AdjustBatchUseCase{txRunner: txRunner}
}

// AdjustBatch aplica el delta sobre el remanente del lote dentro de una
// transacción. Invariante: 0 <= remanente <= cantidad recibida; violar el piso
// es ErrInsufficientStock, violar el techo es ErrConflict.
func (uc *AdjustBatchUseCase) AdjustBatch(
	ctx context.Context,
	companyID, userID, batchID string,
	req dto.AdjustBatchRequest,
) error {
	if companyID == "" || batchID == "" {
		return domain.ErrInvalidInput
	}
	if req.QuantityDelta.IsZero() {
		return domain.ErrInvalidInput
	}
	switch req.Type {
	case entity.AdjustmentTypeCONSUMPTION, entity.AdjustmentTypeTRANSFER:
		// Consumos y traslados solo restan.
		if req.QuantityDelta.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.AdjustmentTypeCORRECTION:
		// Cualquier signo.
	default:
		return domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchWriteRepository,
		adjRepo repository.BatchAdjustmentRepository,
	) error {
		// Bloquea la fila del lote para evitar que dos ajustes concurrentes
		// lean el mismo remanente.
		batch, err := batchRepo.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.CompanyID != companyID {
			return domain.ErrForbidden
		}

		newRemaining := batch.QuantityRemaining.Add(req.QuantityDelta)
		if newRemaining.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		if newRemaining.GreaterThan(batch.QuantityReceived) {
			return domain.ErrConflict
		}

		batch.QuantityRemaining = newRemaining
		batch.UpdatedAt = now
		if err := batchRepo.UpdateRemaining(ctx, batch); err != nil {
			return err
		}

		adj := &entity.BatchAdjustment{
			ID:            uuid.New().String(),
			TransactionID: txID,
			BatchID:       batchID,
			Type:          req.Type,
			QuantityDelta: req.QuantityDelta,
			Reason:        req.Reason,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return adjRepo.Create(ctx, adj)
	})
}
