package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)
var _ repository.StockBatchWriteRepository = (*StockBatchRepo)(nil)

const batchColumns = `
	b.id, b.company_id, b.product_id, b.warehouse_id, b.procurement_channel,
	b.quantity_received, b.quantity_remaining, b.unit_cost,
	b.freight_cost, b.duty_cost, b.insurance_cost, b.handling_cost,
	b.landed_cost_per_unit, b.received_at,
	b.batch_number, b.container_number, b.country_of_origin, b.mill_name,
	b.created_at, b.updated_at`

// StockBatchRepo implementación de los puertos de lotes sobre PostgreSQL
// (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// ListByProduct devuelve los lotes del producto dentro del alcance de la
// empresa. El orden FIFO lo impone el dominio, no el ORDER BY: aquí solo se
// ordena para que la lectura sea estable entre llamadas.
func (r *StockBatchRepo) ListByProduct(ctx context.Context, q repository.BatchQuery) ([]entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches b
		WHERE b.company_id = $1 AND b.product_id = $2`
	args := []any{q.CompanyID, q.ProductID}
	if q.WarehouseID != "" {
		query += ` AND b.warehouse_id = $3`
		args = append(args, q.WarehouseID)
	}
	if !q.IncludeDepleted {
		query += ` AND b.quantity_remaining > 0`
	}
	query += ` ORDER BY b.received_at NULLS FIRST, b.created_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// ListActive devuelve todos los lotes activos de la empresa (todas las
// referencias). Lo usa la auditoría programada de envejecimiento.
func (r *StockBatchRepo) ListActive(ctx context.Context, companyID string) ([]entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches b
		WHERE b.company_id = $1 AND b.quantity_remaining > 0
		ORDER BY b.product_id, b.received_at NULLS FIRST, b.created_at`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// GetForUpdate carga el lote y bloquea su fila (SELECT ... FOR UPDATE).
// Devuelve nil sin error cuando el lote no existe.
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, batchID string) (*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches b
		WHERE b.id = $1
		FOR UPDATE`
	row := r.q.QueryRow(ctx, query, batchID)
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// UpdateRemaining persiste el nuevo remanente del lote. Las columnas
// inmutables (canal, costos, cantidad recibida) no aparecen en el UPDATE.
func (r *StockBatchRepo) UpdateRemaining(ctx context.Context, batch *entity.StockBatch) error {
	query := `
		UPDATE stock_batches
		SET quantity_remaining = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, batch.ID, batch.QuantityRemaining, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch remaining: lote %s no existe", batch.ID)
	}
	return nil
}

// Upsert inserta o actualiza un lote completo. Lo usa la ingesta desde el
// servicio legado: el lote remoto manda sobre la copia local, salvo
// quantity_remaining que solo se pisa si el lote local no ha sido ajustado
// después de la última sincronización (updated_at remoto más reciente).
func (r *StockBatchRepo) Upsert(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (
			id, company_id, product_id, warehouse_id, procurement_channel,
			quantity_received, quantity_remaining, unit_cost,
			freight_cost, duty_cost, insurance_cost, handling_cost,
			landed_cost_per_unit, received_at,
			batch_number, container_number, country_of_origin, mill_name,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			procurement_channel  = EXCLUDED.procurement_channel,
			quantity_received    = EXCLUDED.quantity_received,
			quantity_remaining   = CASE
				WHEN stock_batches.updated_at > EXCLUDED.updated_at THEN stock_batches.quantity_remaining
				ELSE EXCLUDED.quantity_remaining
			END,
			unit_cost            = EXCLUDED.unit_cost,
			freight_cost         = EXCLUDED.freight_cost,
			duty_cost            = EXCLUDED.duty_cost,
			insurance_cost       = EXCLUDED.insurance_cost,
			handling_cost        = EXCLUDED.handling_cost,
			landed_cost_per_unit = EXCLUDED.landed_cost_per_unit,
			received_at          = EXCLUDED.received_at,
			batch_number         = EXCLUDED.batch_number,
			container_number     = EXCLUDED.container_number,
			country_of_origin    = EXCLUDED.country_of_origin,
			mill_name            = EXCLUDED.mill_name,
			updated_at           = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.ProductID, b.WarehouseID, string(b.ProcurementChannel),
		b.QuantityReceived, b.QuantityRemaining, b.UnitCost,
		b.FreightCost, b.DutyCost, b.InsuranceCost, b.HandlingCost,
		b.LandedCostPerUnit, b.ReceivedAt,
		b.BatchNumber, b.ContainerNumber, b.CountryOfOrigin, b.MillName,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

func scanBatches(rows pgx.Rows) ([]entity.StockBatch, error) {
	var out []entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return out, nil
}

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.ProductID, &b.WarehouseID, &b.ProcurementChannel,
		&b.QuantityReceived, &b.QuantityRemaining, &b.UnitCost,
		&b.FreightCost, &b.DutyCost, &b.InsuranceCost, &b.HandlingCost,
		&b.LandedCostPerUnit, &b.ReceivedAt,
		&b.BatchNumber, &b.ContainerNumber, &b.CountryOfOrigin, &b.MillName,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
