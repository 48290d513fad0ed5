// File: lixenwraith/objconfig/type.go
package objconfig

import (
	"fmt"
	"reflect"
	"strconv"
)

// String retrieves a report value by its dashed key.
// Attempts conversion from common types if the stored value isn't already a string.
func (h Hyperparameters) String(key string) (string, error) {
	val, found := h[key]
	if !found {
		return "", fmt.Errorf("hyperparameter not found: %s", key)
	}
	if val == nil {
		return "", nil
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for %s", val, key)
	}
}

// Int64 retrieves an int64 report value.
// Floats are truncated; strings are parsed with base detection.
func (h Hyperparameters) Int64(key string) (int64, error) {
	val, found := h[key]
	if !found {
		return 0, fmt.Errorf("hyperparameter not found: %s", key)
	}
	if val == nil {
		return 0, fmt.Errorf("value for %s is nil, cannot convert to int64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(int64(^uint64(0)>>1)) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for %s: overflow", u, key)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		i, err := strconv.ParseInt(s, 0, 64)
		if err == nil {
			return i, nil
		}
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("cannot convert string %q to int64 for %s: %w", s, key, err)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for %s", val, key)
}

// Bool retrieves a boolean report value. Numbers are true when non-zero.
func (h Hyperparameters) Bool(key string) (bool, error) {
	val, found := h[key]
	if !found {
		return false, fmt.Errorf("hyperparameter not found: %s", key)
	}
	if val == nil {
		return false, fmt.Errorf("value for %s is nil, cannot convert to bool", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		b, err := strconv.ParseBool(v.String())
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for %s: %w", v.String(), key, err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for %s", val, key)
}

// Float64 retrieves a float64 report value.
func (h Hyperparameters) Float64(key string) (float64, error) {
	val, found := h[key]
	if !found {
		return 0.0, fmt.Errorf("hyperparameter not found: %s", key)
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for %s is nil, cannot convert to float64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for %s: %w", v.String(), key, err)
		}
		return f, nil
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for %s", val, key)
}
