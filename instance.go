// FILE: lixenwraith/objconfig/instance.go
package objconfig

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Instance is a validated, constructed Node. It is read-only once Build returns.
type Instance struct {
	node     *Node
	prefix   string
	config   any // struct value returned by Schema.Validate, nil without a schema
	children map[string]*Instance
	choices  map[string]any
	sources  map[string]Source
	object   any
}

// Node returns the declaration this instance was built from.
func (i *Instance) Node() *Node { return i.node }

// Prefix returns the flag prefix the instance was built under ("" for the root).
func (i *Instance) Prefix() string { return i.prefix }

// Config returns a copy of the validated config struct, or nil for nodes
// without a schema. Slices and maps are copied so callers cannot alter the
// built tree.
func (i *Instance) Config() any { return cloneConfig(i.config) }

// Child returns the named child instance, or nil when absent (including no-op switch choices).
func (i *Instance) Child(name string) *Instance { return i.children[name] }

// Children returns the names of the built children in sorted order.
func (i *Instance) Children() []string {
	return slices.Sorted(maps.Keys(i.children))
}

// Choice returns the discriminator chosen for the switch declared as name on this node.
func (i *Instance) Choice(name string) (string, bool) {
	v, ok := i.choices[i.prefix+name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Extra returns a copy of the switch choices recorded on this node, keyed by flag name.
func (i *Instance) Extra() map[string]any {
	return maps.Clone(i.choices)
}

// Source reports where the named field's value came from.
func (i *Instance) Source(field string) (Source, bool) {
	src, ok := i.sources[field]
	return src, ok
}

// Object returns the value produced by the node's New hook.
func (i *Instance) Object() any { return i.object }

// Hyperparameters flattens the tree rooted at i.
func (i *Instance) Hyperparameters() (Hyperparameters, error) {
	return Flatten(i)
}

// Dump renders the instance tree with configs and choices for debugging.
func (i *Instance) Dump() string {
	sc := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	var b strings.Builder
	i.dump(&b, &sc, "")
	return b.String()
}

func (i *Instance) dump(b *strings.Builder, sc *spew.ConfigState, indent string) {
	fmt.Fprintf(b, "%s%s", indent, i.node.name())
	if i.prefix != "" {
		fmt.Fprintf(b, " (--%s*)", i.prefix)
	}
	b.WriteString("\n")

	if i.config != nil {
		for _, line := range strings.Split(strings.TrimRight(sc.Sdump(i.config), "\n"), "\n") {
			fmt.Fprintf(b, "%s  %s\n", indent, line)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(i.choices)) {
		fmt.Fprintf(b, "%s  %s = %v\n", indent, k, i.choices[k])
	}
	for _, name := range i.Children() {
		i.children[name].dump(b, sc, indent+"  ")
	}
}

// ConfigAs returns the instance's config as T.
func ConfigAs[T any](i *Instance) (T, error) {
	cfg, ok := cloneConfig(i.config).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("config of %s is %T, not %T", i.node.name(), i.config, zero)
	}
	return cfg, nil
}

func cloneConfig(config any) any {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Struct {
		return config
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	for n := 0; n < c.NumField(); n++ {
		if f := c.Field(n); f.CanSet() {
			f.Set(cloneValue(f))
		}
	}
	return c.Interface()
}

// ObjectAs returns the object built by the node's New hook as T.
func ObjectAs[T any](i *Instance) (T, error) {
	obj, ok := i.object.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("object of %s is %T, not %T", i.node.name(), i.object, zero)
	}
	return obj, nil
}
