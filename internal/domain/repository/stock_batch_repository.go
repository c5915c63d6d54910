package repository

import (
	"context"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// BatchQuery alcance de consulta de lotes. WarehouseID vacío = todas las
// bodegas de la empresa. IncludeDepleted controla si se devuelven lotes
// agotados PARA PRESENTACIÓN; la valoración siempre trabaja sobre el conjunto
// activo sin importar este flag.
type BatchQuery struct {
	CompanyID       string
	ProductID       string
	WarehouseID     string
	IncludeDepleted bool
}

// StockBatchRepository puerto de lectura de lotes. Lo implementan el adaptador
// PostgreSQL y el cliente del servicio legado de stock; el motor de valoración
// no sabe cuál tiene detrás.
//
// Un fallo del origen se devuelve como error envuelto, nunca como slice vacío:
// "no se pudo consultar" y "cero stock confirmado" son estados distintos.
type StockBatchRepository interface {
	ListByProduct(ctx context.Context, q BatchQuery) ([]entity.StockBatch, error)
}

// StockBatchWriteRepository puerto de mutación de lotes, usado solo dentro de
// transacciones (TxRunner) para el ajuste de cantidades.
type StockBatchWriteRepository interface {
	// GetForUpdate carga el lote y bloquea su fila (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, batchID string) (*entity.StockBatch, error)
	// UpdateRemaining persiste el nuevo remanente. QuantityReceived y
	// ProcurementChannel jamás se tocan.
	UpdateRemaining(ctx context.Context, batch *entity.StockBatch) error
}

// BatchAdjustmentRepository registro de auditoría de ajustes.
type BatchAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.BatchAdjustment) error
}
