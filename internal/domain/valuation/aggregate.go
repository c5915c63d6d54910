package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// ValuationRollup agregado de valoración por producto sobre el conjunto activo.
// Todas las salidas numéricas son finitas; el conjunto vacío produce el rollup
// todo-en-cero, nunca un error.
type ValuationRollup struct {
	TotalQuantity       decimal.Decimal
	TotalValue          decimal.Decimal
	WeightedAverageCost decimal.Decimal
	// LastAcquisitionPrice es el UnitCost (nunca el landed) del lote activo con
	// recepción más reciente: responde "cuánto pagamos la última vez", no
	// "cuánto vale". 0 con conjunto activo vacío.
	LastAcquisitionPrice decimal.Decimal
	ActiveBatchCount     int
	// HasImportedBatches permite al consumidor etiquetar los totales como
	// "al costo" vs "al costo landed".
	HasImportedBatches bool
}

// ProcurementSummary cantidades por canal de adquisición sobre el conjunto
// activo, independiente del costo. TotalQuantity = LocalQuantity +
// ImportedQuantity; los lotes de canal desconocido quedan fuera de los tres
// acumulados y se reportan aparte en UnknownChannelCount.
type ProcurementSummary struct {
	LocalQuantity       decimal.Decimal
	ImportedQuantity    decimal.Decimal
	TotalQuantity       decimal.Decimal
	UnknownChannelCount int
}

// Aggregate reduce el conjunto activo de un producto a su rollup de valoración.
//
// El valor total suma cantidad * costo efectivo POR LOTE: los costos nunca se
// promedian antes de multiplicar (evita el doble redondeo). El promedio
// ponderado divide valor entre cantidad solo con cantidad > 0; con cantidad 0
// devuelve 0 explícitamente, jamás NaN/Inf.
func Aggregate(active []entity.StockBatch) ValuationRollup {
	r := ValuationRollup{
		TotalQuantity:        decimal.Zero,
		TotalValue:           decimal.Zero,
		WeightedAverageCost:  decimal.Zero,
		LastAcquisitionPrice: decimal.Zero,
	}

	lastIdx := -1
	for i, b := range active {
		r.TotalQuantity = r.TotalQuantity.Add(b.QuantityRemaining)
		r.TotalValue = r.TotalValue.Add(BatchValue(b))
		if b.ProcurementChannel == entity.ChannelImported {
			r.HasImportedBatches = true
		}
		// Lote de recepción más reciente; en empate de fecha gana el que está
		// más adelante en el orden estable (el mismo desempate FIFO, invertido).
		if lastIdx < 0 || !active[i].SortDate().Before(active[lastIdx].SortDate()) {
			lastIdx = i
		}
	}
	r.ActiveBatchCount = len(active)

	if r.TotalQuantity.GreaterThan(decimal.Zero) {
		r.WeightedAverageCost = r.TotalValue.Div(r.TotalQuantity)
	}
	if lastIdx >= 0 {
		r.LastAcquisitionPrice = active[lastIdx].UnitCost
	}
	return r
}

// Summarize calcula el resumen de adquisición por canal del conjunto activo.
func Summarize(active []entity.StockBatch) ProcurementSummary {
	local, imported, unknown := Partition(active)

	s := ProcurementSummary{
		LocalQuantity:       decimal.Zero,
		ImportedQuantity:    decimal.Zero,
		UnknownChannelCount: len(unknown),
	}
	for _, b := range local {
		s.LocalQuantity = s.LocalQuantity.Add(b.QuantityRemaining)
	}
	for _, b := range imported {
		s.ImportedQuantity = s.ImportedQuantity.Add(b.QuantityRemaining)
	}
	s.TotalQuantity = s.LocalQuantity.Add(s.ImportedQuantity)
	return s
}
