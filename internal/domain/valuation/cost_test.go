package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/valuation"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// EffectiveUnitCost: el orden de resolución landed → FOB es el corazón del
// motor de valoración. Estos casos fijan el contrato exacto.
// ──────────────────────────────────────────────────────────────────────────────

func TestEffectiveUnitCost_ImportadoConLandedPositivo(t *testing.T) {
	b := entity.StockBatch{
		ProcurementChannel: entity.ChannelImported,
		UnitCost:           dec(120),
		LandedCostPerUnit:  decPtr(135),
	}
	assert.True(t, valuation.EffectiveUnitCost(b).Equal(dec(135)),
		"un importado con landed > 0 debe valorarse al costo landed")
	assert.False(t, valuation.IsEstimatedCost(b))
}

func TestEffectiveUnitCost_ImportadoSinLandedCaeAlFOB(t *testing.T) {
	sinLanded := entity.StockBatch{
		ProcurementChannel: entity.ChannelImported,
		UnitCost:           dec(90),
	}
	landedCero := entity.StockBatch{
		ProcurementChannel: entity.ChannelImported,
		UnitCost:           dec(90),
		LandedCostPerUnit:  decPtr(0),
	}

	assert.True(t, valuation.EffectiveUnitCost(sinLanded).Equal(dec(90)),
		"sin landed debe usarse el FOB")
	assert.True(t, valuation.EffectiveUnitCost(landedCero).Equal(dec(90)),
		"landed = 0 no es autoritativo, debe usarse el FOB")

	// Ambos quedan marcados como valoración estimada (landed pendiente).
	assert.True(t, valuation.IsEstimatedCost(sinLanded))
	assert.True(t, valuation.IsEstimatedCost(landedCero))
}

func TestEffectiveUnitCost_LocalIgnoraCamposLanded(t *testing.T) {
	b := entity.StockBatch{
		ProcurementChannel: entity.ChannelLocal,
		UnitCost:           dec(100),
		// Campos landed presentes por error de captura: no deben influir.
		LandedCostPerUnit: decPtr(999),
		FreightCost:       dec(50),
	}
	assert.True(t, valuation.EffectiveUnitCost(b).Equal(dec(100)),
		"un lote LOCAL siempre se valora a su costo de adquisición")
	assert.False(t, valuation.IsEstimatedCost(b),
		"la marca de estimado es exclusiva de importados")
}

func TestBatchValue_CantidadPorCostoEfectivo(t *testing.T) {
	// Escenarios A y B del contrato de valoración.
	a := entity.StockBatch{
		ProcurementChannel: entity.ChannelLocal,
		QuantityRemaining:  dec(500),
		UnitCost:           dec(100),
	}
	bImp := entity.StockBatch{
		ProcurementChannel: entity.ChannelImported,
		QuantityRemaining:  dec(300),
		UnitCost:           dec(120),
		LandedCostPerUnit:  decPtr(135),
	}

	assert.True(t, valuation.BatchValue(a).Equal(dec(50000)))
	assert.True(t, valuation.BatchValue(bImp).Equal(dec(40500)))
}
