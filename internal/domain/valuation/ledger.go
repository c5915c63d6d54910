package valuation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// ActiveBatches devuelve el conjunto activo de lotes en el orden canónico de
// procesamiento (FIFO). Descarta lotes con remanente <= 0: son lotes agotados
// y un remanente ausente o basura ya llegó saneado a 0 en la frontera de
// ingesta, nunca como "stock infinito". El filtrado es idempotente.
//
// No muta el slice de entrada; siempre devuelve una copia ordenada.
func ActiveBatches(raw []entity.StockBatch) []entity.StockBatch {
	active := make([]entity.StockBatch, 0, len(raw))
	for _, b := range raw {
		if b.QuantityRemaining.GreaterThan(decimal.Zero) {
			active = append(active, b)
		}
	}
	SortFIFO(active)
	return active
}

// SortFIFO ordena in situ por fecha de recepción ascendente (más antiguo
// primero), con fallback a la fecha de creación y luego al cero de time.Time:
// los registros sin fecha ordenan primero. Orden estable: fechas iguales
// conservan su orden relativo original, requisito para que dos invocaciones
// sobre los mismos datos produzcan siempre la misma secuencia.
//
// Este es el orden de consumo FIFO usado para presentación y, por convención,
// para cualquier lógica de asignación en la ruta de escritura.
func SortFIFO(batches []entity.StockBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].SortDate().Before(batches[j].SortDate())
	})
}

// Partition divide el conjunto activo por canal en exactamente los dos valores
// enumerados. Un canal no reconocido es un error de integridad: el lote va a
// unknown (excluido de ambos grupos, jamás contado en el que no corresponde)
// y el caller es responsable de reportarlo.
func Partition(batches []entity.StockBatch) (local, imported, unknown []entity.StockBatch) {
	local = make([]entity.StockBatch, 0, len(batches))
	imported = make([]entity.StockBatch, 0, len(batches))
	for _, b := range batches {
		switch b.ProcurementChannel {
		case entity.ChannelLocal:
			local = append(local, b)
		case entity.ChannelImported:
			imported = append(imported, b)
		default:
			unknown = append(unknown, b)
		}
	}
	return local, imported, unknown
}

// FilterByChannel devuelve el subconjunto del canal dado conservando el orden
// recibido. Con un canal inválido devuelve vacío (no hay grupo donde caer).
func FilterByChannel(batches []entity.StockBatch, channel entity.ProcurementChannel) []entity.StockBatch {
	out := make([]entity.StockBatch, 0, len(batches))
	for _, b := range batches {
		if b.ProcurementChannel == channel {
			out = append(out, b)
		}
	}
	return out
}
