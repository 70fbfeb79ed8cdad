package plugins

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrInvalidParams = errors.New("invalid plugin params")

// Params is the options value built-in plugins expect.
type Params = map[string]any

func paramsOf(name string, opts any) (Params, error) {
	switch p := opts.(type) {
	case nil:
		return Params{}, nil
	case Params:
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %s expects map[string]any options, got %T", ErrInvalidParams, name, opts)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

func requireParams(params Params, name string, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return invalid("%s requires '%s' param", name, k)
		}
	}
	return nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint32:
		return int64(val), true
	case float64:
		return int64(val), true
	default:
		return 0, false
	}
}

func toList(v interface{}) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}
