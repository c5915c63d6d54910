package inventory

import (
	"context"

	"github.com/tu-usuario/acero-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre la mutación del lote y su registro de auditoría.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchWriteRepository,
		adjRepo repository.BatchAdjustmentRepository,
	) error) error
}
