package domain

import (
	"math"
	"strconv"
	"strings"
)

// ScalarKind identifies which variant a Scalar holds.
type ScalarKind int

const (
	KindString ScalarKind = iota
	KindInt
	KindFloat
	KindBool
)

func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Scalar is an env value as written in the config: a string, integer,
// float or boolean. The zero value is the empty string.
type Scalar struct {
	kind ScalarKind
	str  string
	num  int64
	flt  float64
	bl   bool
}

// StringScalar wraps a string.
func StringScalar(s string) Scalar { return Scalar{kind: KindString, str: s} }

// IntScalar wraps an integer.
func IntScalar(n int64) Scalar { return Scalar{kind: KindInt, num: n} }

// FloatScalar wraps a float.
func FloatScalar(f float64) Scalar { return Scalar{kind: KindFloat, flt: f} }

// BoolScalar wraps a boolean.
func BoolScalar(b bool) Scalar { return Scalar{kind: KindBool, bl: b} }

// ScalarOf converts a decoded config value into a Scalar. It reports false
// for nil, collections and any other non-scalar value.
func ScalarOf(v any) (Scalar, bool) {
	switch val := v.(type) {
	case string:
		return StringScalar(val), true
	case bool:
		return BoolScalar(val), true
	case int:
		return IntScalar(int64(val)), true
	case int64:
		return IntScalar(val), true
	case uint64:
		if val <= math.MaxInt64 {
			return IntScalar(int64(val)), true
		}
		// Too large for int64; keep the decimal text.
		return Scalar{kind: KindInt, str: strconv.FormatUint(val, 10)}, true
	case float64:
		return FloatScalar(val), true
	default:
		return Scalar{}, false
	}
}

// Kind returns the variant held by s.
func (s Scalar) Kind() ScalarKind { return s.kind }

// String renders s the way it is exported into a shell environment.
func (s Scalar) String() string {
	switch s.kind {
	case KindInt:
		if s.str != "" {
			return s.str
		}
		return strconv.FormatInt(s.num, 10)
	case KindFloat:
		return formatFloat(s.flt)
	case KindBool:
		return strconv.FormatBool(s.bl)
	default:
		return s.str
	}
}

// formatFloat prints plain decimals for ordinary magnitudes and keeps a
// trailing ".0" on integral values so a float never reads as an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
