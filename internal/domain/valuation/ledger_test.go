package valuation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/valuation"
)

func tm(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func tmPtr(s string) *time.Time {
	t := tm(s)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// ActiveBatches: filtro de agotados + orden FIFO determinista.
// ──────────────────────────────────────────────────────────────────────────────

func TestActiveBatches_ExcluyeAgotadosYNegativos(t *testing.T) {
	raw := []entity.StockBatch{
		{ID: "activo", QuantityRemaining: dec(10), ReceivedAt: tmPtr("2026-01-05")},
		{ID: "agotado", QuantityRemaining: dec(0), ReceivedAt: tmPtr("2026-01-01")},
		{ID: "negativo", QuantityRemaining: dec(-3), ReceivedAt: tmPtr("2026-01-02")},
	}

	active := valuation.ActiveBatches(raw)
	require.Len(t, active, 1)
	assert.Equal(t, "activo", active[0].ID,
		"remanente <= 0 significa lote retirado, fuera del conjunto activo")
}

func TestActiveBatches_FiltroIdempotente(t *testing.T) {
	raw := []entity.StockBatch{
		{ID: "a", QuantityRemaining: dec(5), ReceivedAt: tmPtr("2026-01-03")},
		{ID: "b", QuantityRemaining: dec(0)},
		{ID: "c", QuantityRemaining: dec(7), ReceivedAt: tmPtr("2026-01-01")},
	}

	once := valuation.ActiveBatches(raw)
	twice := valuation.ActiveBatches(once)
	assert.Equal(t, once, twice, "re-filtrar un conjunto ya filtrado no lo cambia")
}

func TestActiveBatches_OrdenFIFOMasAntiguoPrimero(t *testing.T) {
	raw := []entity.StockBatch{
		{ID: "reciente", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-03-01")},
		{ID: "antiguo", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-01")},
		{ID: "medio", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-02-01")},
	}

	active := valuation.ActiveBatches(raw)
	require.Len(t, active, 3)
	assert.Equal(t, "antiguo", active[0].ID)
	assert.Equal(t, "medio", active[1].ID)
	assert.Equal(t, "reciente", active[2].ID)
}

func TestActiveBatches_SinFechaOrdenaPrimero(t *testing.T) {
	created := tm("2026-02-15")
	raw := []entity.StockBatch{
		{ID: "con-fecha", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-01")},
		{ID: "solo-creacion", QuantityRemaining: dec(1), CreatedAt: created},
		{ID: "sin-fechas", QuantityRemaining: dec(1)},
	}

	active := valuation.ActiveBatches(raw)
	require.Len(t, active, 3)
	assert.Equal(t, "sin-fechas", active[0].ID,
		"sin ninguna fecha ordena primero (época cero)")
	assert.Equal(t, "con-fecha", active[1].ID)
	assert.Equal(t, "solo-creacion", active[2].ID,
		"sin recepción se usa la fecha de creación como fallback")
}

func TestActiveBatches_OrdenEstableConFechasIguales(t *testing.T) {
	raw := []entity.StockBatch{
		{ID: "primero", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-10")},
		{ID: "segundo", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-10")},
		{ID: "tercero", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-10")},
	}

	// El orden relativo original debe conservarse en llamadas repetidas.
	for i := 0; i < 5; i++ {
		active := valuation.ActiveBatches(raw)
		require.Len(t, active, 3)
		assert.Equal(t, "primero", active[0].ID)
		assert.Equal(t, "segundo", active[1].ID)
		assert.Equal(t, "tercero", active[2].ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Partition: exactamente dos canales válidos; lo demás es error de datos.
// ──────────────────────────────────────────────────────────────────────────────

func TestPartition_CanalDesconocidoNoCaeEnNingunGrupo(t *testing.T) {
	batches := []entity.StockBatch{
		{ID: "l1", ProcurementChannel: entity.ChannelLocal, QuantityRemaining: dec(5)},
		{ID: "i1", ProcurementChannel: entity.ChannelImported, QuantityRemaining: dec(3)},
		{ID: "x1", ProcurementChannel: "DROPSHIP", QuantityRemaining: dec(2)},
		{ID: "x2", ProcurementChannel: "", QuantityRemaining: dec(1)},
	}

	local, imported, unknown := valuation.Partition(batches)
	assert.Len(t, local, 1)
	assert.Len(t, imported, 1)
	require.Len(t, unknown, 2,
		"un canal fuera de {LOCAL, IMPORTED} se excluye de ambos grupos")
	assert.Equal(t, "x1", unknown[0].ID)
	assert.Equal(t, "x2", unknown[1].ID)
}

func TestFilterByChannel_PreservaElOrden(t *testing.T) {
	batches := []entity.StockBatch{
		{ID: "i-viejo", ProcurementChannel: entity.ChannelImported},
		{ID: "l1", ProcurementChannel: entity.ChannelLocal},
		{ID: "i-nuevo", ProcurementChannel: entity.ChannelImported},
	}

	imported := valuation.FilterByChannel(batches, entity.ChannelImported)
	require.Len(t, imported, 2)
	assert.Equal(t, "i-viejo", imported[0].ID)
	assert.Equal(t, "i-nuevo", imported[1].ID)

	assert.Empty(t, valuation.FilterByChannel(batches, "DROPSHIP"),
		"un canal inválido no tiene grupo: subconjunto vacío")
}

func TestChannelIsValid(t *testing.T) {
	assert.True(t, entity.ChannelLocal.IsValid())
	assert.True(t, entity.ChannelImported.IsValid())
	assert.False(t, entity.ProcurementChannel("DROPSHIP").IsValid())
	assert.False(t, entity.ProcurementChannel("").IsValid())
	assert.False(t, entity.ProcurementChannel("local").IsValid(),
		"el canal es sensible a mayúsculas: no se coerciona")
}

func TestSortFIFO_NoMutaElOriginalEnActiveBatches(t *testing.T) {
	raw := []entity.StockBatch{
		{ID: "b", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-02-01")},
		{ID: "a", QuantityRemaining: dec(1), ReceivedAt: tmPtr("2026-01-01")},
	}

	_ = valuation.ActiveBatches(raw)
	assert.Equal(t, "b", raw[0].ID, "ActiveBatches trabaja sobre una copia")
}
