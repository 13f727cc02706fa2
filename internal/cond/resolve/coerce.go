package resolve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrCoercion reports that a stored value could not be converted to the type
// a rule compares against. Coercion failure is an evaluation fact, not a
// configuration error: the engine folds it into a non-matching
// classification instead of aborting.
var ErrCoercion = errors.New("cannot coerce value")

// AsString converts a raw property value to a string. Text coercion is
// lenient: every scalar type has a string form.
func AsString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case nil:
		return "", ErrCoercion
	default:
		return fmt.Sprintf("%v", t), nil
	}
}

// AsInt64 converts a raw property value to an int64. Numeric coercion is
// strict: booleans are rejected, and floating-point values must be integral.
// Numeric strings are parsed after trimming surrounding whitespace.
func AsInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, ErrCoercion
		}
		return int64(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ErrCoercion
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, ErrCoercion
		}
		return n, nil
	default:
		return 0, ErrCoercion
	}
}

// AsFloat64 converts a raw property value to a float64. Booleans are
// rejected; numeric strings are parsed after trimming surrounding whitespace.
func AsFloat64(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ErrCoercion
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrCoercion
		}
		return f, nil
	default:
		return 0, ErrCoercion
	}
}

// AsFloat32 converts a raw property value to a float32 with 32-bit parsing
// semantics for numeric strings.
func AsFloat32(v any) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case float64:
		return float32(t), nil
	case int:
		return float32(t), nil
	case int64:
		return float32(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ErrCoercion
		}
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, ErrCoercion
		}
		return float32(f), nil
	default:
		return 0, ErrCoercion
	}
}
