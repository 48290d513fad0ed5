// FILE: lixenwraith/objconfig/schema.go
package objconfig

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DefaultTagName is the struct tag used for field names when none is configured.
const DefaultTagName = "toml"

// Field describes one declared schema field.
type Field struct {
	Name       string
	Type       reflect.Type
	Default    any
	HasDefault bool // false for required fields
	Help       string
}

// NullDefault reports whether the field was declared with a nil default,
// meaning a value must be supplied by some source.
func (f Field) NullDefault() bool {
	return f.HasDefault && f.Default == nil
}

// IsList reports whether the field collects multiple values.
func (f Field) IsList() bool {
	t := indirectType(f.Type)
	return (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() != reflect.Uint8
}

// Schema is the validation capability a Node delegates to.
type Schema interface {
	// Fields enumerates declared fields in declaration order.
	Fields() []Field
	// Validate coerces and validates a payload of raw values in one step.
	// Keys absent from the payload take their declared default.
	Validate(payload map[string]any) (any, error)
	// Values returns the field values of a config previously returned by Validate.
	Values(config any) map[string]any
}

// Validator is implemented by schema structs that need cross-field checks
// after decoding.
type Validator interface {
	Validate() error
}

// StructSchema is a Schema declared by a Go struct whose field values are the defaults.
// Nil pointer or nil interface fields declare a nil default that must be overridden.
type StructSchema struct {
	proto   reflect.Value
	tagName string
	fields  []Field
	index   map[string]int // field name -> struct field index
}

// SchemaOption configures a StructSchema.
type SchemaOption func(*StructSchema)

// WithTagName selects the struct tag used for field names.
func WithTagName(tag string) SchemaOption {
	return func(s *StructSchema) {
		s.tagName = tag
	}
}

// Struct declares a schema from a struct value (or pointer to one) holding defaults.
// It panics if prototype is not a struct, since schemas are static declarations.
func Struct(prototype any, opts ...SchemaOption) *StructSchema {
	v := reflect.ValueOf(prototype)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			panic("objconfig: Struct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("objconfig: Struct requires a struct or struct pointer, got %T", prototype))
	}

	s := &StructSchema{
		proto:   v,
		tagName: DefaultTagName,
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(s.tagName)
		if tag == "-" {
			continue
		}

		name := sf.Name
		required := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "required" {
					required = true
				}
			}
		}

		f := Field{
			Name: name,
			Type: sf.Type,
			Help: sf.Tag.Get("help"),
		}
		if !required {
			f.HasDefault = true
			fv := v.Field(i)
			if !((fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface) && fv.IsNil()) {
				f.Default = fv.Interface()
			}
		}

		s.fields = append(s.fields, f)
		s.index[name] = i
	}

	return s
}

// Fields implements Schema.
func (s *StructSchema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Validate implements Schema. The returned value is a struct of the prototype's type.
func (s *StructSchema) Validate(payload map[string]any) (any, error) {
	var unknown []string
	for k := range payload {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownFieldError{Keys: unknown}
	}

	var missing []string
	for _, f := range s.fields {
		if _, ok := payload[f.Name]; !ok && !f.HasDefault {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	// Start from a copy of the defaults so untouched fields keep them
	target := reflect.New(s.proto.Type())
	target.Elem().Set(s.proto)
	for _, i := range s.index {
		fv := target.Elem().Field(i)
		fv.Set(cloneValue(fv))
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target.Interface(),
		TagName:          s.tagName,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, err
	}

	if v, ok := target.Interface().(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	return target.Elem().Interface(), nil
}

// Values implements Schema.
func (s *StructSchema) Values(config any) map[string]any {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != s.proto.Type() {
		return nil
	}

	values := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		values[f.Name] = plainValue(v.Field(s.index[f.Name]))
	}
	return values
}

// cloneValue copies slices and maps so decoded configs never alias the prototype.
func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(c, v)
		return c
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), iter.Value())
		}
		return c
	default:
		return v
	}
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
