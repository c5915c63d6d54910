package legacy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/pkg/guard"
)

// Formatos de fecha observados en el servicio legado.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeBatch convierte un lote crudo del servicio legado a entidad.
// Cada campo numérico pasa por guard: null, "", NaN e Infinity degradan al
// valor por defecto en vez de contaminar la aritmética. El canal se transporta
// tal cual llega: si trae un valor fuera del enum, el dominio lo reporta, aquí
// no se adivina.
func NormalizeBatch(raw map[string]any, companyID string) entity.StockBatch {
	b := entity.StockBatch{
		ID:                 pickString(raw, "id", "batchId", "batch_id"),
		CompanyID:          companyID,
		ProductID:          pickString(raw, "productId", "product_id"),
		WarehouseID:        pickString(raw, "warehouseId", "warehouse_id"),
		ProcurementChannel: entity.ProcurementChannel(pickString(raw, "procurementChannel", "procurement_channel", "channel")),
		QuantityReceived:   pickDecimal(raw, "quantityReceived", "quantity_received"),
		QuantityRemaining:  pickDecimal(raw, "quantityRemaining", "quantity_remaining"),
		UnitCost:           pickDecimal(raw, "unitCost", "unit_cost"),
		FreightCost:        pickDecimal(raw, "freightCost", "freight_cost"),
		DutyCost:           pickDecimal(raw, "dutyCost", "duty_cost"),
		InsuranceCost:      pickDecimal(raw, "insuranceCost", "insurance_cost"),
		HandlingCost:       pickDecimal(raw, "handlingCost", "handling_cost"),
		BatchNumber:        pickString(raw, "batchNumber", "batch_number"),
		ContainerNumber:    pickString(raw, "containerNumber", "container_number"),
		CountryOfOrigin:    pickString(raw, "countryOfOrigin", "country_of_origin"),
		MillName:           pickString(raw, "millName", "mill_name"),
	}

	// landed_cost_per_unit distingue null (sin calcular) de 0 (en tránsito,
	// landed pendiente): solo un valor presente produce puntero.
	if v, ok := pick(raw, "landedCostPerUnit", "landed_cost_per_unit"); ok && v != nil {
		d := guard.Decimal(v, decimal.Zero)
		b.LandedCostPerUnit = &d
	}

	b.ReceivedAt = pickTime(raw, "receivedDate", "received_date", "receivedAt", "received_at")
	if t := pickTime(raw, "createdAt", "created_at"); t != nil {
		b.CreatedAt = *t
	}
	if t := pickTime(raw, "updatedAt", "updated_at"); t != nil {
		b.UpdatedAt = *t
	}
	return b
}

// pick devuelve el primer alias presente en el mapa.
func pick(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func pickString(raw map[string]any, keys ...string) string {
	v, _ := pick(raw, keys...)
	return guard.String(v, "")
}

func pickDecimal(raw map[string]any, keys ...string) decimal.Decimal {
	v, _ := pick(raw, keys...)
	return guard.Decimal(v, decimal.Zero)
}

// pickTime parsea el primer alias presente con los formatos conocidos.
// Fecha ausente o imparseable produce nil: "edad desconocida" es un estado
// válido del lote, no un error de ingesta.
func pickTime(raw map[string]any, keys ...string) *time.Time {
	v, ok := pick(raw, keys...)
	if !ok {
		return nil
	}
	s := guard.String(v, "")
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
