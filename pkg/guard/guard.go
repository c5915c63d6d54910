// Package guard coerciona valores sin tipo (JSON decodificado en any) a tipos
// seguros para aritmética financiera e iteración. Es la ÚNICA capa autorizada a
// tragarse errores de tipo: todo input externo sin esquema debe pasar por aquí
// antes de usarse numéricamente. Ninguna función lanza panic ni tiene efectos
// secundarios.
package guard

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry par clave/valor de un mapa, en orden determinista.
type Entry struct {
	Key   string
	Value any
}

// Decimal convierte v a decimal.Decimal. Devuelve def para nil, string vacío,
// valores no numéricos, NaN o ±Inf. Los negativos y fraccionarios pasan sin
// recorte: aquí no se aplica ninguna política de dominio, solo saneamiento.
func Decimal(v any, def decimal.Decimal) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return def
		}
		return *x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return def
		}
		return decimal.NewFromFloat(x)
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return decimal.NewFromFloat(f)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromUint64(uint64(x))
	case uint64:
		return decimal.NewFromUint64(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return def
		}
		return d
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return def
		}
		return d
	default:
		return def
	}
}

// Float convierte v a float64 con la misma política que Decimal.
// Útil para campos que no participan en matemática monetaria.
func Float(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return def
		}
		return x
	case float32:
		return Float(float64(x), def)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return f
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return f
	default:
		return def
	}
}

// String convierte v a string. def para nil o tipos no string.
func String(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// Slice devuelve v sin cambios si es []any; cualquier otro tipo produce un
// slice vacío, nunca nil-panic en la iteración del caller.
func Slice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{}
}

// Entries devuelve los pares clave/valor de un map[string]any con las claves
// ordenadas ascendentemente (los mapas de Go no tienen orden y el motor de
// valoración exige resultados deterministas). Un slice NO es un mapa válido:
// también produce vacío.
func Entries(v any) []Entry {
	m, ok := v.(map[string]any)
	if !ok {
		return []Entry{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: m[k]})
	}
	return entries
}

// Keys devuelve las claves ordenadas de un map[string]any, vacío en otro caso.
func Keys(v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return []string{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values devuelve los valores de un map[string]any en el orden de Keys.
func Values(v any) []any {
	m, ok := v.(map[string]any)
	if !ok {
		return []any{}
	}
	values := make([]any, 0, len(m))
	for _, k := range Keys(v) {
		values = append(values, m[k])
	}
	return values
}

// Len cuenta elementos de un slice o claves de un mapa; 0 para cualquier otro tipo.
func Len(v any) int {
	switch x := v.(type) {
	case []any:
		return len(x)
	case map[string]any:
		return len(x)
	default:
		return 0
	}
}
