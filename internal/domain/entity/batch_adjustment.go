package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste de cantidad sobre un lote.
const (
	AdjustmentTypeCONSUMPTION = "CONSUMPTION" // venta / consumo (disminuye)
	AdjustmentTypeTRANSFER    = "TRANSFER"    // salida por traslado (disminuye)
	AdjustmentTypeCORRECTION  = "CORRECTION"  // corrección de conteo (puede aumentar)
)

// BatchAdjustment registro de auditoría de cada mutación de QuantityRemaining.
// QuantityDelta es negativo para consumos/traslados y positivo para correcciones.
type BatchAdjustment struct {
	ID            string
	TransactionID string
	BatchID       string
	Type          string
	QuantityDelta decimal.Decimal
	Reason        string
	CreatedAt     time.Time
	CreatedBy     string
}
