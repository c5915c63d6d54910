// Package excel genera el libro de lotes en formato .xlsx para el área
// contable, que concilia la valoración contra el sistema contable externo.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/acero-erp/internal/application/dto"
)

// LedgerExporter serializa el ledger de lotes y su rollup a un libro Excel.
type LedgerExporter struct{}

// NewLedgerExporter construye el exportador.
func NewLedgerExporter() *LedgerExporter {
	return &LedgerExporter{}
}

var ledgerHeader = []any{
	"Lote", "Canal", "Recibido", "Remanente", "Costo unitario",
	"Landed por unidad", "Costo efectivo", "Valor efectivo",
	"Costo estimado", "Fecha recepción", "Días en stock", "Lento movimiento",
	"Contenedor", "Origen", "Acería",
}

// Export produce el .xlsx en memoria: una hoja con el ledger en orden FIFO y
// una fila de totales tomada del rollup (no recalculada aquí).
func (e *LedgerExporter) Export(list *dto.BatchListResponse, rollup *dto.ValuationRollupDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &ledgerHeader); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	row := 2
	for _, b := range list.Batches {
		landed := ""
		if b.LandedCostPerUnit != nil {
			landed = b.LandedCostPerUnit.String()
		}
		received := ""
		if b.ReceivedDate != nil {
			received = *b.ReceivedDate
		}
		days := ""
		if b.DaysInStock != nil {
			days = fmt.Sprintf("%d", *b.DaysInStock)
		}

		values := []any{
			b.BatchNumber, b.ProcurementChannel,
			b.QuantityReceived.String(), b.QuantityRemaining.String(),
			b.UnitCost.String(), landed,
			b.EffectiveUnitCost.String(), b.EffectiveValue.String(),
			boolES(b.EstimatedCost), received, days, boolES(b.SlowMoving),
			b.ContainerNumber, b.CountryOfOrigin, b.MillName,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("celda fila %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", row, err)
		}
		row++
	}

	// Fila de totales: los valores vienen del agregador, esta capa solo formatea.
	row++
	totals := []any{
		"TOTAL", "",
		"", rollup.TotalQuantity.String(),
		"", "",
		rollup.WeightedAverageCost.String(), rollup.TotalValue.String(),
		fmt.Sprintf("%d estimados", rollup.EstimatedBatchCount),
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, fmt.Errorf("celda totales: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("escribir totales: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func boolES(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
