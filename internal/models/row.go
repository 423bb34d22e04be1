package models

import (
	"fmt"
	"strconv"
)

// The driver hands back int64, float64, string, []byte or nil depending on
// the declared column affinity and what was actually stored. Game data files
// are not strict about either, so row values are coerced rather than asserted.

func asInt(v any) int {
	switch val := v.(type) {
	case int64:
		return int(val)
	case int:
		return val
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	case []byte:
		n, _ := strconv.Atoi(string(val))
		return n
	case bool:
		if val {
			return 1
		}
	}
	return 0
}

func asIntPtr(v any) *int {
	if v == nil {
		return nil
	}
	n := asInt(v)
	return &n
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func checkWidth(kind string, row []any, want int) error {
	if len(row) != want {
		return fmt.Errorf("%s row has %d columns, want %d", kind, len(row), want)
	}
	return nil
}
