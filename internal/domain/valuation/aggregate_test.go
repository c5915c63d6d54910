package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/valuation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aggregate: rollup de valoración. El escenario de referencia del módulo:
//
//	A: LOCAL    qty=500 unitCost=100              → valor 50.000
//	B: IMPORTED qty=300 unitCost=120 landed=135   → valor 40.500
//	{A,B}: qty=800, valor=90.500, promedio ponderado=113,125
// ──────────────────────────────────────────────────────────────────────────────

func escenarioAB() []entity.StockBatch {
	return []entity.StockBatch{
		{
			ID:                 "A",
			ProcurementChannel: entity.ChannelLocal,
			QuantityRemaining:  dec(500),
			UnitCost:           dec(100),
			ReceivedAt:         tmPtr("2026-01-10"),
		},
		{
			ID:                 "B",
			ProcurementChannel: entity.ChannelImported,
			QuantityRemaining:  dec(300),
			UnitCost:           dec(120),
			LandedCostPerUnit:  decPtr(135),
			ReceivedAt:         tmPtr("2026-02-20"),
		},
	}
}

func TestAggregate_EscenarioDeReferencia(t *testing.T) {
	r := valuation.Aggregate(escenarioAB())

	assert.True(t, r.TotalQuantity.Equal(dec(800)), "cantidad total: %s", r.TotalQuantity)
	assert.True(t, r.TotalValue.Equal(dec(90500)), "valor total: %s", r.TotalValue)
	assert.True(t, r.WeightedAverageCost.Equal(dec(113.125)),
		"promedio ponderado = 90500/800: %s", r.WeightedAverageCost)
	assert.Equal(t, 2, r.ActiveBatchCount)
	assert.True(t, r.HasImportedBatches)
}

func TestAggregate_LastAcquisitionEsElFOBDelMasReciente(t *testing.T) {
	r := valuation.Aggregate(escenarioAB())

	// B es el más reciente; su UnitCost es 120, NUNCA su landed 135:
	// la pregunta es "cuánto pagamos la última vez", no "cuánto vale".
	assert.True(t, r.LastAcquisitionPrice.Equal(dec(120)),
		"last acquisition debe ser el UnitCost del lote más reciente, no el landed")
}

func TestAggregate_EmpateDeFechaGanaElUltimoEnOrdenEstable(t *testing.T) {
	misma := tmPtr("2026-02-20")
	batches := []entity.StockBatch{
		{ID: "x", ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(1), UnitCost: dec(80), ReceivedAt: misma},
		{ID: "y", ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(1), UnitCost: dec(95), ReceivedAt: misma},
	}

	r := valuation.Aggregate(batches)
	assert.True(t, r.LastAcquisitionPrice.Equal(dec(95)),
		"con fechas iguales gana el que va después en el orden estable")
}

func TestAggregate_ConjuntoVacioProduceRollupEnCero(t *testing.T) {
	r := valuation.Aggregate(nil)

	assert.True(t, r.TotalQuantity.IsZero())
	assert.True(t, r.TotalValue.IsZero())
	assert.True(t, r.WeightedAverageCost.IsZero(),
		"cantidad 0 jamás produce NaN/Inf: el promedio es 0 por contrato")
	assert.True(t, r.LastAcquisitionPrice.IsZero())
	assert.Equal(t, 0, r.ActiveBatchCount)
	assert.False(t, r.HasImportedBatches)
}

func TestAggregate_FallbackFOBEntraAlValorTotal(t *testing.T) {
	// Escenario C: importado sin landed positivo se valora al FOB (estimado).
	c := entity.StockBatch{
		ID:                 "C",
		ProcurementChannel: entity.ChannelImported,
		QuantityRemaining:  dec(100),
		UnitCost:           dec(90),
		LandedCostPerUnit:  decPtr(0),
		ReceivedAt:         tmPtr("2026-03-01"),
	}

	r := valuation.Aggregate([]entity.StockBatch{c})
	assert.True(t, r.TotalValue.Equal(dec(9000)))
	assert.True(t, valuation.IsEstimatedCost(c),
		"el consumidor debe poder marcar este lote como 'landed pendiente'")
}

func TestAggregate_CostosPorLoteNuncaPrePromediados(t *testing.T) {
	// Dos lotes con costos distintos: el valor total debe ser la suma exacta
	// de qty*costo por lote, no qty_total * promedio.
	batches := []entity.StockBatch{
		{ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(3), UnitCost: dec(10.01)},
		{ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(7), UnitCost: dec(19.99)},
	}

	r := valuation.Aggregate(batches)
	want := dec(3).Mul(dec(10.01)).Add(dec(7).Mul(dec(19.99)))
	assert.True(t, r.TotalValue.Equal(want), "valor total: %s ≠ %s", r.TotalValue, want)
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize: cantidades por canal, independientes del costo.
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_LocalMasImportadoEsElTotal(t *testing.T) {
	batches := []entity.StockBatch{
		{ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(500)},
		{ProcurementChannel: entity.ChannelImported, QuantityRemaining: dec(300)},
		{ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(200)},
	}

	s := valuation.Summarize(batches)
	assert.True(t, s.LocalQuantity.Equal(dec(700)))
	assert.True(t, s.ImportedQuantity.Equal(dec(300)))
	assert.True(t, s.TotalQuantity.Equal(s.LocalQuantity.Add(s.ImportedQuantity)),
		"local + importado = total, siempre")
	assert.Equal(t, 0, s.UnknownChannelCount)
}

func TestSummarize_CanalDesconocidoQuedaFueraYContado(t *testing.T) {
	batches := []entity.StockBatch{
		{ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(10)},
		{ProcurementChannel: "CONSIGNMENT", QuantityRemaining: dec(99)},
	}

	s := valuation.Summarize(batches)
	assert.True(t, s.LocalQuantity.Equal(dec(10)))
	assert.True(t, s.ImportedQuantity.IsZero())
	assert.True(t, s.TotalQuantity.Equal(dec(10)),
		"el lote de canal inválido no se cuenta en ningún acumulado")
	assert.Equal(t, 1, s.UnknownChannelCount,
		"pero sí se reporta para que el caller lo registre como error de datos")
}

func TestSummarize_VacioProduceCeros(t *testing.T) {
	s := valuation.Summarize(nil)
	assert.True(t, s.TotalQuantity.IsZero())
	assert.True(t, s.LocalQuantity.Equal(decimal.Zero))
	assert.True(t, s.ImportedQuantity.Equal(decimal.Zero))
}
