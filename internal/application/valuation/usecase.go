// Package valuation expone el motor de valoración de lotes como casos de uso:
// ledger activo filtrable por canal, rollup de valoración y resumen de
// adquisición por producto.
package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/acero-erp/internal/application/dto"
	"github.com/tu-usuario/acero-erp/internal/domain"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/repository"
	domval "github.com/tu-usuario/acero-erp/internal/domain/valuation"
	"github.com/tu-usuario/acero-erp/pkg/logger"
)

// ChannelFilter filtro de canal aceptado por la API: LOCAL, IMPORTED o ALL.
type ChannelFilter string

const (
	FilterLocal    ChannelFilter = "LOCAL"
	FilterImported ChannelFilter = "IMPORTED"
	FilterAll      ChannelFilter = "ALL"
)

// ParseChannelFilter normaliza el query param channel. Vacío = ALL.
// Un valor fuera del enum es entrada inválida, no se adivina el canal.
func ParseChannelFilter(s string) (ChannelFilter, error) {
	switch ChannelFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterLocal:
		return FilterLocal, nil
	case FilterImported:
		return FilterImported, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// BatchValuationUseCase consulta el origen de lotes y reduce con el motor de
// dominio. Un fallo del origen se propaga como ErrBatchSourceUnavailable:
// nunca se degrada a un rollup en cero, el caller debe poder distinguir
// "sin stock" de "no se pudo determinar el stock".
type BatchValuationUseCase struct {
	batchRepo   repository.StockBatchRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewBatchValuationUseCase construye el caso de uso.
func NewBatchValuationUseCase(
	batchRepo repository.StockBatchRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *BatchValuationUseCase {
	return &BatchValuationUseCase{
		batchRepo:   batchRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// validateScope verifica que el producto exista y pertenezca a la empresa del
// token antes de tocar el origen de lotes.
func (uc *BatchValuationUseCase) validateScope(ctx context.Context, companyID, productID string) error {
	if companyID == "" || productID == "" {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// fetchActive valida el alcance, consulta el origen y devuelve el conjunto
// activo en orden FIFO. Los lotes de canal desconocido se registran como error
// de integridad (quedan en el conjunto, la partición por canal los excluye).
func (uc *BatchValuationUseCase) fetchActive(
	ctx context.Context,
	companyID, productID, warehouseID string,
) ([]entity.StockBatch, error) {
	if err := uc.validateScope(ctx, companyID, productID); err != nil {
		return nil, err
	}
	raw, err := uc.batchRepo.ListByProduct(ctx, repository.BatchQuery{
		CompanyID:   companyID,
		ProductID:   productID,
		WarehouseID: warehouseID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBatchSourceUnavailable, err)
	}

	active := domval.ActiveBatches(raw)
	uc.reportUnknownChannels(productID, active)
	return active, nil
}

// reportUnknownChannels registra los lotes con canal fuera del enum.
func (uc *BatchValuationUseCase) reportUnknownChannels(productID string, batches []entity.StockBatch) {
	for _, b := range batches {
		if !b.ProcurementChannel.IsValid() {
			uc.log.Warn().
				Err(domain.ErrUnknownChannel).
				Str("product_id", productID).
				Str("batch_id", b.ID).
				Str("channel", string(b.ProcurementChannel)).
				Msg("lote con canal de adquisición desconocido: excluido de ambos grupos")
		}
	}
}

// ListBatches devuelve el ledger del producto restringido al canal pedido, en
// orden FIFO. includeDepleted agrega los lotes agotados PARA PRESENTACIÓN; los
// campos de valoración del DTO siguen calculándose por lote igual que siempre.
func (uc *BatchValuationUseCase) ListBatches(
	ctx context.Context,
	companyID, productID, warehouseID string,
	filter ChannelFilter,
	includeDepleted bool,
) (*dto.BatchListResponse, error) {
	if err := uc.validateScope(ctx, companyID, productID); err != nil {
		return nil, err
	}
	raw, err := uc.batchRepo.ListByProduct(ctx, repository.BatchQuery{
		CompanyID:       companyID,
		ProductID:       productID,
		WarehouseID:     warehouseID,
		IncludeDepleted: includeDepleted,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBatchSourceUnavailable, err)
	}

	var batches []entity.StockBatch
	if includeDepleted {
		// Presentación: agotados incluidos, mismo orden FIFO sobre copia.
		batches = make([]entity.StockBatch, len(raw))
		copy(batches, raw)
		domval.SortFIFO(batches)
	} else {
		batches = domval.ActiveBatches(raw)
	}
	uc.reportUnknownChannels(productID, batches)

	if filter != FilterAll {
		batches = domval.FilterByChannel(batches, entity.ProcurementChannel(filter))
	}

	now := time.Now()
	out := make([]dto.StockBatchDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchDTO(b, now))
	}
	return &dto.BatchListResponse{
		ProductID: productID,
		Channel:   string(filter),
		Total:     len(out),
		Batches:   out,
	}, nil
}

// GetValuation devuelve el rollup de valoración del conjunto activo.
func (uc *BatchValuationUseCase) GetValuation(
	ctx context.Context,
	companyID, productID, warehouseID string,
) (*dto.ValuationRollupDTO, error) {
	active, err := uc.fetchActive(ctx, companyID, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	r := domval.Aggregate(active)
	estimated := 0
	for _, b := range active {
		if domval.IsEstimatedCost(b) {
			estimated++
		}
	}
	return &dto.ValuationRollupDTO{
		ProductID:            productID,
		TotalQuantity:        r.TotalQuantity,
		TotalValue:           r.TotalValue,
		WeightedAverageCost:  r.WeightedAverageCost,
		LastAcquisitionPrice: r.LastAcquisitionPrice,
		ActiveBatchCount:     r.ActiveBatchCount,
		HasImportedBatches:   r.HasImportedBatches,
		EstimatedBatchCount:  estimated,
	}, nil
}

// GetProcurementSummary devuelve las cantidades por canal del conjunto activo.
func (uc *BatchValuationUseCase) GetProcurementSummary(
	ctx context.Context,
	companyID, productID, warehouseID string,
) (*dto.ProcurementSummaryDTO, error) {
	active, err := uc.fetchActive(ctx, companyID, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	s := domval.Summarize(active)
	return &dto.ProcurementSummaryDTO{
		ProductID:           productID,
		LocalQuantity:       s.LocalQuantity,
		ImportedQuantity:    s.ImportedQuantity,
		TotalQuantity:       s.TotalQuantity,
		UnknownChannelCount: s.UnknownChannelCount,
	}, nil
}

// toBatchDTO proyecta un lote a su DTO con los derivados de valoración.
func toBatchDTO(b entity.StockBatch, now time.Time) dto.StockBatchDTO {
	d := dto.StockBatchDTO{
		ID:                 b.ID,
		ProductID:          b.ProductID,
		WarehouseID:        b.WarehouseID,
		ProcurementChannel: string(b.ProcurementChannel),
		QuantityReceived:   b.QuantityReceived,
		QuantityRemaining:  b.QuantityRemaining,
		UnitCost:           b.UnitCost,
		LandedCostPerUnit:  b.LandedCostPerUnit,
		EffectiveUnitCost:  domval.EffectiveUnitCost(b),
		EffectiveValue:     domval.BatchValue(b),
		EstimatedCost:      domval.IsEstimatedCost(b),
		SlowMoving:         domval.IsSlowMoving(b.ReceivedAt, now),
		BatchNumber:        b.BatchNumber,
		ContainerNumber:    b.ContainerNumber,
		CountryOfOrigin:    b.CountryOfOrigin,
		MillName:           b.MillName,
	}
	if b.ReceivedAt != nil {
		s := b.ReceivedAt.Format(time.RFC3339)
		d.ReceivedDate = &s
	}
	if days, ok := domval.DaysInStock(b.ReceivedAt, now); ok {
		d.DaysInStock = &days
	}
	return d
}
