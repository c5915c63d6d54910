// Package valuation contiene el motor de valoración de lotes: derivación de
// costo efectivo, envejecimiento, orden FIFO y agregados por producto.
// Todas las funciones son puras sobre una colección ya materializada; la
// concurrencia y el I/O viven en las capas de aplicación e infraestructura.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// EffectiveUnitCost deriva el costo por unidad con el que se valora un lote.
// Orden de resolución (el desempate importa):
//
//  1. IMPORTED con LandedCostPerUnit presente y > 0 → costo landed
//     (FOB + flete + arancel + seguro + manejo; el valor económicamente correcto).
//  2. En cualquier otro caso → UnitCost.
//
// El costo landed puede faltar por rezago de captura; el fallback a FOB evita
// valorar con un dato ausente a cambio de una inexactitud temporal que SE DEBE
// exponer al usuario (ver IsEstimatedCost).
func EffectiveUnitCost(b entity.StockBatch) decimal.Decimal {
	if b.ProcurementChannel == entity.ChannelImported &&
		b.LandedCostPerUnit != nil &&
		b.LandedCostPerUnit.GreaterThan(decimal.Zero) {
		return *b.LandedCostPerUnit
	}
	return b.UnitCost
}

// IsEstimatedCost indica si un lote IMPORTED se está valorando con el fallback
// FOB porque aún no tiene costo landed positivo ("landed cost pendiente").
// Los reportes que consumen la valoración deben poder marcar estos lotes como
// estimados por lote.
func IsEstimatedCost(b entity.StockBatch) bool {
	if b.ProcurementChannel != entity.ChannelImported {
		return false
	}
	return b.LandedCostPerUnit == nil || !b.LandedCostPerUnit.GreaterThan(decimal.Zero)
}

// BatchValue valor del remanente del lote a su costo efectivo.
func BatchValue(b entity.StockBatch) decimal.Decimal {
	return b.QuantityRemaining.Mul(EffectiveUnitCost(b))
}
