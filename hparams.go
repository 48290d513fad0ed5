// FILE: lixenwraith/objconfig/hparams.go
package objconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Hyperparameters is the flat report of every resolved value in a built
// tree, keyed by dashed flag name. It never feeds back into resolution.
type Hyperparameters map[string]any

// Flatten produces the hyperparameter report for inst. Root fields are
// unprefixed; descendants use the same dashed names as their flags.
func Flatten(inst *Instance) (Hyperparameters, error) {
	hp := make(Hyperparameters)
	if err := flattenInto(hp, inst, inst, ""); err != nil {
		return nil, err
	}
	return hp, nil
}

func flattenInto(hp Hyperparameters, root, inst *Instance, prefix string) error {
	put := func(key string, v any) error {
		if _, dup := hp[key]; dup {
			return &DuplicateHyperparameterError{Key: key}
		}
		hp[key] = v
		return nil
	}

	if inst.node.Schema != nil && inst.config != nil {
		values := inst.node.Schema.Values(inst.config)
		for _, k := range slices.Sorted(maps.Keys(values)) {
			if strings.HasPrefix(k, "_") {
				continue
			}
			if err := put(prefix+k, values[k]); err != nil {
				return err
			}
		}
	}

	// Choices are already keyed by full flag name
	for _, k := range slices.Sorted(maps.Keys(inst.choices)) {
		if err := put(k, inst.choices[k]); err != nil {
			return err
		}
	}

	for _, name := range inst.Children() {
		child := inst.children[name]
		if child == root {
			continue
		}
		if err := flattenInto(hp, root, child, prefix+name+"-"); err != nil {
			return err
		}
	}
	return nil
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// plainValue reduces a config field to a report-friendly value: named
// basic types become their underlying kind and durations become strings.
func plainValue(v reflect.Value) any {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}

	switch v.Type() {
	case durationType:
		return time.Duration(v.Int()).String()
	case timeType:
		return v.Interface().(time.Time).Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Slice, reflect.Array:
		if v.Type().Implements(stringerType) {
			return v.Interface().(fmt.Stringer).String()
		}
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []any{}
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = plainValue(v.Index(i))
		}
		return out
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = plainValue(iter.Value())
		}
		return out
	case reflect.Struct:
		if v.Type().Implements(stringerType) {
			return v.Interface().(fmt.Stringer).String()
		}
		if reflect.PointerTo(v.Type()).Implements(stringerType) {
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			return p.Interface().(fmt.Stringer).String()
		}
		return v.Interface()
	default:
		return v.Interface()
	}
}

// Keys returns the report keys in sorted order.
func (h Hyperparameters) Keys() []string {
	return slices.Sorted(maps.Keys(h))
}

// Debug renders the report as aligned "key = value" lines.
func (h Hyperparameters) Debug() string {
	keys := h.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%-*s = %v\n", width, k, h[k])
	}
	return b.String()
}

// WriteTOML encodes the report as a flat TOML table.
func (h Hyperparameters) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(map[string]any(h)); err != nil {
		return fmt.Errorf("failed to encode hyperparameters as TOML: %w", err)
	}
	return nil
}

// WriteYAML encodes the report as a YAML mapping.
func (h Hyperparameters) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(h)); err != nil {
		return fmt.Errorf("failed to encode hyperparameters as YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes the report as an indented JSON object.
func (h Hyperparameters) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(map[string]any(h), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode hyperparameters as JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
