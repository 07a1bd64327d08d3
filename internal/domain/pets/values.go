package pets

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values es el payload campo -> valor de insert/update. Las keys son nombres
// de columna; una key ausente significa "no tocar".
type Values map[string]any

func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String devuelve el valor como texto. ok=false si la key falta o es nil.
func (v Values) String(key string) (string, bool) {
	raw, exists := v[key]
	if !exists || raw == nil {
		return "", false
	}
	switch x := raw.(type) {
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// Int convierte el valor a entero. Acepta enteros de Go, Gender, json.Number,
// floats sin parte decimal (lo que deja encoding/json) y strings numéricos.
func (v Values) Int(key string) (int64, error) {
	raw, exists := v[key]
	if !exists || raw == nil {
		return 0, fmt.Errorf("%s is required", key)
	}

	switch x := raw.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, fmt.Errorf("%s out of range", key)
		}
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%s out of range", key)
		}
		return int64(x), nil
	case Gender:
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || x >= math.MaxInt64 || x < math.MinInt64 {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}
