// FILE: lixenwraith/objconfig/node.go
package objconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Component is a nested entry of a Node: either another *Node or a *Switch.
type Component interface {
	// build resolves the component under prefix, which ends with "-".
	build(b *builder, prefix string) (built, error)
	// setup registers the component's flags under prefix.
	setup(prefix string, p *Parser) error
}

// built is the outcome of building one Component.
type built struct {
	instance *Instance     // nil for a no-op switch choice
	choices  map[string]any // switch discriminators, keyed by flag name
}

// Node declares one configurable unit: its schema, per-scope default
// overrides and nested components. Nodes are static declarations and may be
// shared between concurrent builds.
type Node struct {
	// Name identifies the node in errors and logs.
	Name string

	// Schema declares the node's own fields. Nil for pure containers.
	Schema Schema

	// Defaults overrides declared defaults within this node's scope.
	// Keys are relative to the node's flag prefix and may address
	// descendants ("encoder-batch_size").
	Defaults map[string]any

	// Children maps a name to a nested *Node or *Switch.
	Children map[string]Component

	// New optionally constructs the user object from the finished instance.
	New func(inst *Instance) (any, error)
}

// WithDefaults returns a copy of n whose Defaults are layered with defaults.
// Layering an already layered node merges both maps into one level; on
// conflicting keys the outermost call wins.
func (n *Node) WithDefaults(defaults map[string]any) *Node {
	merged := make(map[string]any, len(n.Defaults)+len(defaults))
	maps.Copy(merged, n.Defaults)
	maps.Copy(merged, defaults)

	layered := *n
	layered.Defaults = merged
	if !strings.HasSuffix(n.name(), "WithDefaults") {
		layered.Name = n.name() + "WithDefaults"
	}
	return &layered
}

func (n *Node) name() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Schema != nil {
		if s, ok := n.Schema.(*StructSchema); ok {
			return s.proto.Type().String()
		}
		return fmt.Sprintf("%T", n.Schema)
	}
	return "Node"
}

// childNames returns the names of n's children in the order they are visited.
func (n *Node) childNames() []string {
	return slices.Sorted(maps.Keys(n.Children))
}

func (n *Node) build(b *builder, prefix string) (built, error) {
	inst, err := b.buildNode(n, prefix)
	if err != nil {
		return built{}, err
	}
	return built{instance: inst}, nil
}
