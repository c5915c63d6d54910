package dto

import "github.com/shopspring/decimal"

// StockBatchDTO lote en respuestas HTTP, en orden FIFO.
// days_in_stock es null cuando no hay fecha de recepción: "edad desconocida"
// se presenta distinto de "0 días".
type StockBatchDTO struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"product_id"`
	WarehouseID        string           `json:"warehouse_id,omitempty"`
	ProcurementChannel string           `json:"procurement_channel"`
	QuantityReceived   decimal.Decimal  `json:"quantity_received"`
	QuantityRemaining  decimal.Decimal  `json:"quantity_remaining"`
	UnitCost           decimal.Decimal  `json:"unit_cost"`
	LandedCostPerUnit  *decimal.Decimal `json:"landed_cost_per_unit,omitempty"`
	EffectiveUnitCost  decimal.Decimal  `json:"effective_unit_cost"`
	EffectiveValue     decimal.Decimal  `json:"effective_value"`
	// EstimatedCost marca un importado valorado al FOB por landed pendiente.
	EstimatedCost bool    `json:"estimated_cost"`
	ReceivedDate  *string `json:"received_date,omitempty"`
	DaysInStock   *int    `json:"days_in_stock"`
	SlowMoving    bool    `json:"slow_moving"`

	BatchNumber     string `json:"batch_number,omitempty"`
	ContainerNumber string `json:"container_number,omitempty"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	MillName        string `json:"mill_name,omitempty"`
}

// BatchListResponse respuesta de GET /api/products/:id/batches.
type BatchListResponse struct {
	ProductID string          `json:"product_id"`
	Channel   string          `json:"channel"` // filtro aplicado: LOCAL | IMPORTED | ALL
	Total     int             `json:"total"`
	Batches   []StockBatchDTO `json:"batches"`
}

// ValuationRollupDTO rollup de valoración por producto.
type ValuationRollupDTO struct {
	ProductID            string          `json:"product_id"`
	TotalQuantity        decimal.Decimal `json:"total_quantity"`
	TotalValue           decimal.Decimal `json:"total_value"`
	WeightedAverageCost  decimal.Decimal `json:"weighted_average_cost"`
	LastAcquisitionPrice decimal.Decimal `json:"last_acquisition_price"`
	ActiveBatchCount     int             `json:"active_batch_count"`
	HasImportedBatches   bool            `json:"has_imported_batches"`
	// EstimatedBatchCount lotes importados con landed pendiente: el total
	// incluye valoraciones estimadas y el consumidor debe poder decirlo.
	EstimatedBatchCount int `json:"estimated_batch_count"`
}

// ProcurementSummaryDTO cantidades por canal de adquisición.
type ProcurementSummaryDTO struct {
	ProductID           string          `json:"product_id"`
	LocalQuantity       decimal.Decimal `json:"local_quantity"`
	ImportedQuantity    decimal.Decimal `json:"imported_quantity"`
	TotalQuantity       decimal.Decimal `json:"total_quantity"`
	UnknownChannelCount int             `json:"unknown_channel_count,omitempty"`
}

// BatchAdjustmentDTO registro de auditoría de un ajuste en respuestas HTTP.
type BatchAdjustmentDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	BatchID       string          `json:"batch_id"`
	Type          string          `json:"type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Reason        string          `json:"reason,omitempty"`
	CreatedAt     string          `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// AdjustBatchRequest body para POST /api/batches/:id/adjustments.
// quantity_delta negativo = consumo/traslado; positivo = corrección.
type AdjustBatchRequest struct {
	Type          string          `json:"type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Reason        string          `json:"reason,omitempty"`
}
