package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcurementChannel canal de adquisición de un lote. Determina la regla de
// derivación de costo: LOCAL usa el costo de compra completo, IMPORTED usa el
// costo landed cuando existe. Inmutable después de la creación del lote.
type ProcurementChannel string

const (
	ChannelLocal    ProcurementChannel = "LOCAL"
	ChannelImported ProcurementChannel = "IMPORTED"
)

// IsValid indica si el canal es uno de los dos valores enumerados.
// Cualquier otro valor es un error de integridad de datos: el lote se excluye
// de ambos grupos de canal y la condición se reporta (nunca se adivina el grupo).
func (c ProcurementChannel) IsValid() bool {
	return c == ChannelLocal || c == ChannelImported
}

// StockBatch representa un lote discreto de acero recibido, con su propio costo
// y canal de adquisición. Muchos lotes por producto.
//
// Ciclo de vida: lo crea el proceso de recepción (compra/GRN, fuera de este
// servicio) con QuantityRemaining = QuantityReceived. Solo las operaciones de
// ajuste mutan QuantityRemaining; QuantityReceived y ProcurementChannel son
// inmutables. Un lote con remanente 0 queda retirado por filtrado, nunca se borra.
type StockBatch struct {
	ID                 string
	CompanyID          string
	ProductID          string
	WarehouseID        string
	ProcurementChannel ProcurementChannel
	QuantityReceived   decimal.Decimal // fijada en la recepción, inmutable
	QuantityRemaining  decimal.Decimal // invariante: 0 <= remaining <= received
	UnitCost           decimal.Decimal // IMPORTED: costo FOB; LOCAL: costo de adquisición completo

	// Componentes de costo landed (solo IMPORTED, 0 por defecto).
	FreightCost   decimal.Decimal
	DutyCost      decimal.Decimal
	InsuranceCost decimal.Decimal
	HandlingCost  decimal.Decimal

	// LandedCostPerUnit costo por unidad pre-agregado aguas arriba
	// (FOB + flete + arancel + seguro + manejo, dividido por cantidad).
	// Cuando está presente y > 0 es el costo autoritativo del lote importado.
	LandedCostPerUnit *decimal.Decimal

	// ReceivedAt fecha de recepción: base del envejecimiento y del orden FIFO.
	// Sin fecha el lote reporta "edad desconocida" y ordena primero.
	ReceivedAt *time.Time

	// Atributos descriptivos; se transportan sin cálculo alguno.
	BatchNumber     string
	ContainerNumber string
	CountryOfOrigin string
	MillName        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStock indica si el lote sigue activo (remanente estrictamente positivo).
func (b *StockBatch) HasStock() bool {
	return b.QuantityRemaining.GreaterThan(decimal.Zero)
}

// IsImported atajo de legibilidad para el canal IMPORTED.
func (b *StockBatch) IsImported() bool {
	return b.ProcurementChannel == ChannelImported
}

// SortDate fecha canónica para el orden FIFO: ReceivedAt, si no CreatedAt,
// si no el cero de time.Time (los lotes sin fecha ordenan primero).
func (b *StockBatch) SortDate() time.Time {
	if b.ReceivedAt != nil {
		return *b.ReceivedAt
	}
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	return time.Time{}
}
