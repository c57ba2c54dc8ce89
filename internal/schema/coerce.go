package schema

import (
	"fmt"
	"math"
)

// String coerces a value to string.
func String(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// Int coerces a value to int. JSON numbers decode as float64, so integral
// floats are accepted.
func Int(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// Bool coerces a value to bool.
func Bool(v interface{}) (interface{}, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("expected boolean, got %T", v)
	}
	return b, nil
}

// StringSlice coerces a JSON array to []string.
func StringSlice(v interface{}) (interface{}, error) {
	switch items := v.(type) {
	case []string:
		return items, nil
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string element, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array of strings, got %T", v)
	}
}
