package guard_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/acero-erp/pkg/guard"
)

// ──────────────────────────────────────────────────────────────────────────────
// Decimal: la política es "nunca propagar basura a la matemática financiera".
// nil, "", NaN y ±Inf caen al default; negativos y fraccionarios pasan intactos.
// ──────────────────────────────────────────────────────────────────────────────

func TestDecimal_ValoresInvalidosCaenAlDefault(t *testing.T) {
	def := decimal.NewFromInt(7)

	cases := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"string vacío", ""},
		{"string con espacios", "   "},
		{"string no numérico", "acero"},
		{"NaN", math.NaN()},
		{"Inf positivo", math.Inf(1)},
		{"Inf negativo", math.Inf(-1)},
		{"bool", true},
		{"slice", []any{1, 2}},
		{"mapa", map[string]any{"a": 1}},
		{"puntero nil", (*decimal.Decimal)(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := guard.Decimal(tc.in, def)
			assert.True(t, got.Equal(def), "input inválido debe producir el default")
		})
	}
}

func TestDecimal_ValoresNumericosPasanSinRecorte(t *testing.T) {
	zero := decimal.Zero

	assert.True(t, guard.Decimal(120.5, zero).Equal(decimal.NewFromFloat(120.5)))
	assert.True(t, guard.Decimal("135.25", zero).Equal(decimal.NewFromFloat(135.25)))
	assert.True(t, guard.Decimal(int64(300), zero).Equal(decimal.NewFromInt(300)))
	assert.True(t, guard.Decimal(json.Number("90"), zero).Equal(decimal.NewFromInt(90)))

	// Negativos NO se recortan: el saneamiento no aplica reglas de dominio.
	neg := guard.Decimal(-15.5, zero)
	assert.True(t, neg.Equal(decimal.NewFromFloat(-15.5)),
		"los negativos deben pasar sin cambio")
}

func TestDecimal_DecimalYaTipadoPasaIdentico(t *testing.T) {
	d := decimal.NewFromFloat(113.125)
	assert.True(t, guard.Decimal(d, decimal.Zero).Equal(d))
	assert.True(t, guard.Decimal(&d, decimal.Zero).Equal(d))
}

func TestFloat_MismaPoliticaQueDecimal(t *testing.T) {
	assert.Equal(t, 0.0, guard.Float(math.NaN(), 0))
	assert.Equal(t, 42.0, guard.Float(math.Inf(1), 42))
	assert.Equal(t, 99.5, guard.Float("99.5", 0))
	assert.Equal(t, 1.0, guard.Float(nil, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Colecciones: Slice/Entries/Keys/Values/Len nunca lanzan y un slice nunca se
// interpreta como mapa (no es un input válido para Entries/Keys/Values).
// ──────────────────────────────────────────────────────────────────────────────

func TestSlice_SoloSecuenciasPasan(t *testing.T) {
	s := []any{"a", "b"}
	assert.Equal(t, s, guard.Slice(s))
	assert.Empty(t, guard.Slice(nil))
	assert.Empty(t, guard.Slice("no soy slice"))
	assert.Empty(t, guard.Slice(map[string]any{"k": 1}))
}

func TestEntries_MapaProduceParesOrdenados(t *testing.T) {
	m := map[string]any{"b": 2, "a": 1, "c": 3}

	entries := guard.Entries(m)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Key, "las claves deben salir ordenadas")
	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, "c", entries[2].Key)
	assert.Equal(t, 1, entries[0].Value)
}

func TestEntries_SliceNoEsUnMapaValido(t *testing.T) {
	assert.Empty(t, guard.Entries([]any{1, 2, 3}),
		"un slice no debe tratarse como mapa con claves")
	assert.Empty(t, guard.Entries(nil))
	assert.Empty(t, guard.Entries(42))
}

func TestKeysValues_CoherentesEntreSi(t *testing.T) {
	m := map[string]any{"qty": 500, "cost": 100}

	keys := guard.Keys(m)
	values := guard.Values(m)
	require.Len(t, keys, 2)
	require.Len(t, values, 2)
	assert.Equal(t, []string{"cost", "qty"}, keys)
	assert.Equal(t, 100, values[0])
	assert.Equal(t, 500, values[1])

	assert.Empty(t, guard.Keys([]any{1}))
	assert.Empty(t, guard.Values(nil))
}

func TestLen_ContratoPorTipo(t *testing.T) {
	assert.Equal(t, 3, guard.Len([]any{1, 2, 3}))
	assert.Equal(t, 2, guard.Len(map[string]any{"a": 1, "b": 2}))
	assert.Equal(t, 0, guard.Len(nil))
	assert.Equal(t, 0, guard.Len("string"))
	assert.Equal(t, 0, guard.Len(12))
}
