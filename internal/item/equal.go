package item

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Equal reports whether a and b identify the same value under the loose
// comparison used for every value and key lookup: numbers, numeric strings
// and booleans compare numerically, so 5 == "5" and 1 == true. nil equals
// only nil.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return sa == sb
		}
	}
	fa, okA := number(a)
	fb, okB := number(b)
	if okA && okB {
		return fa == fb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Canonical returns a map key such that Equal(a, b) implies
// Canonical(a) == Canonical(b). ok is false for nil.
func Canonical(v any) (key string, ok bool) {
	if v == nil {
		return "", false
	}
	if f, isNum := number(v); isNum {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64), true
	}
	if s, isStr := v.(string); isStr {
		return "s:" + s, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return "v:" + s, true
}

// number coerces v to a float64 when it is numeric, a bool or a string
// holding a number.
func number(v any) (float64, bool) {
	switch v := v.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		f, err := cast.ToFloat64E(v)
		return f, err == nil
	}
	return 0, false
}
