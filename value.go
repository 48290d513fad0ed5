// FILE: lixenwraith/objconfig/value.go
package objconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// valueGetter is implemented by the flag values registered by Setup.
type valueGetter interface {
	Get() any
}

// parseFunc converts one command-line token into a typed value.
type parseFunc func(s string) (any, error)

var durationType = reflect.TypeOf(time.Duration(0))

// scalarParser returns the parser for a scalar field type. Types without a
// direct conversion keep the raw string and leave coercion to the schema.
func scalarParser(t reflect.Type) (parseFunc, string) {
	t = indirectType(t)
	if t == durationType {
		return func(s string) (any, error) { return time.ParseDuration(s) }, "duration"
	}

	switch t.Kind() {
	case reflect.Bool:
		return func(s string) (any, error) { return strconv.ParseBool(s) }, "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		return func(s string) (any, error) { return strconv.ParseInt(s, 0, bits) }, "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := t.Bits()
		return func(s string) (any, error) { return strconv.ParseUint(s, 0, bits) }, "uint"
	case reflect.Float32, reflect.Float64:
		return func(s string) (any, error) { return strconv.ParseFloat(s, 64) }, "float"
	default:
		return func(s string) (any, error) { return s, nil }, "string"
	}
}

// fieldValue is a pflag.Value holding one typed scalar.
type fieldValue struct {
	typ   string
	parse parseFunc
	value any
	text  string
}

func newFieldValue(t reflect.Type) *fieldValue {
	parse, typ := scalarParser(t)
	return &fieldValue{typ: typ, parse: parse}
}

func (v *fieldValue) Set(s string) error {
	parsed, err := v.parse(s)
	if err != nil {
		return fmt.Errorf("invalid %s value %q", v.typ, s)
	}
	v.value = parsed
	v.text = s
	return nil
}

func (v *fieldValue) String() string { return v.text }

func (v *fieldValue) Type() string { return v.typ }

func (v *fieldValue) Get() any { return v.value }

// listValue is a pflag.Value that accumulates list items across repeated
// occurrences. Non-string elements also accept a list literal per
// occurrence, so "--x 1,2 --x [3]" yields [1 2 3]. String elements are
// kept verbatim.
type listValue struct {
	typ     string
	literal bool
	parse   parseFunc
	items   []any
	texts   []string
}

func newListValue(t reflect.Type) *listValue {
	elem := indirectType(t).Elem()
	parse, typ := scalarParser(elem)
	return &listValue{
		typ:     typ + "s",
		literal: indirectType(elem).Kind() != reflect.String,
		parse:   parse,
	}
}

func (v *listValue) Set(s string) error {
	raw := []any{s}
	if v.literal {
		items, err := parseListLiteral(s)
		if err != nil {
			return err
		}
		raw = items
	}

	for _, item := range raw {
		parsed, err := v.parse(fmt.Sprint(item))
		if err != nil {
			return fmt.Errorf("invalid %s element %v", strings.TrimSuffix(v.typ, "s"), item)
		}
		v.items = append(v.items, parsed)
	}
	v.texts = append(v.texts, s)
	return nil
}

func (v *listValue) String() string {
	if len(v.texts) == 0 {
		return ""
	}
	return "[" + strings.Join(v.texts, ",") + "]"
}

func (v *listValue) Type() string { return v.typ }

func (v *listValue) Get() any {
	out := make([]any, len(v.items))
	copy(out, v.items)
	return out
}

// choiceValue is the pflag.Value behind a Switch flag.
type choiceValue struct {
	value string
}

func (v *choiceValue) Set(s string) error {
	v.value = s
	return nil
}

func (v *choiceValue) String() string { return v.value }

func (v *choiceValue) Type() string { return "choice" }

func (v *choiceValue) Get() any { return v.value }
