package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/acero-erp/internal/domain"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/repository"
)

var _ repository.BatchAdjustmentRepository = (*BatchAdjustmentRepo)(nil)

// BatchAdjustmentRepo persistencia del registro de auditoría de ajustes.
type BatchAdjustmentRepo struct {
	q Querier
}

// NewBatchAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchAdjustmentRepository(q Querier) *BatchAdjustmentRepo {
	return &BatchAdjustmentRepo{q: q}
}

// Create inserta el registro de auditoría del ajuste.
func (r *BatchAdjustmentRepo) Create(ctx context.Context, adj *entity.BatchAdjustment) error {
	query := `
		INSERT INTO batch_adjustments (
			id, transaction_id, batch_id, type, quantity_delta, reason, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.TransactionID, adj.BatchID, adj.Type,
		adj.QuantityDelta, adj.Reason, adj.CreatedAt, adj.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create batch adjustment: %w", err)
	}
	return nil
}

// ListByBatch devuelve el historial de ajustes de un lote, más reciente primero.
func (r *BatchAdjustmentRepo) ListByBatch(ctx context.Context, batchID string) ([]entity.BatchAdjustment, error) {
	query := `
		SELECT id, transaction_id, batch_id, type, quantity_delta, reason, created_at, created_by
		FROM batch_adjustments
		WHERE batch_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch adjustments: %w", err)
	}
	defer rows.Close()

	var out []entity.BatchAdjustment
	for rows.Next() {
		var a entity.BatchAdjustment
		if err := rows.Scan(
			&a.ID, &a.TransactionID, &a.BatchID, &a.Type,
			&a.QuantityDelta, &a.Reason, &a.CreatedAt, &a.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan batch adjustment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch adjustments: %w", err)
	}
	return out, nil
}
