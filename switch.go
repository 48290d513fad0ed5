// FILE: lixenwraith/objconfig/switch.go
package objconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Switch is a Component whose accepted sub-schema is chosen by a
// discriminator value. The switch owns a single flag named after itself;
// the selected node's fields live under the same prefix, so
// {"choice": "a", "choice-option": 99} selects option a and sets its
// "option" field.
type Switch struct {
	// Options maps each discriminator to a Node, or to nil for a no-op choice.
	Options map[string]*Node

	// Default is used when no source supplies a non-empty discriminator.
	// Empty means the discriminator is mandatory.
	Default string
}

// NewSwitch declares a Switch with an optional default choice.
func NewSwitch(options map[string]*Node, defaultChoice ...string) *Switch {
	s := &Switch{Options: options}
	if len(defaultChoice) > 0 {
		s.Default = defaultChoice[0]
	}
	return s
}

// Choices returns the valid discriminator values in sorted order.
func (s *Switch) Choices() []string {
	return slices.Sorted(maps.Keys(s.Options))
}

// option looks up the node for choice.
func (s *Switch) option(name, choice string) (*Node, error) {
	node, ok := s.Options[choice]
	if !ok {
		return nil, &UnknownDiscriminatorError{Name: name, Value: choice, Options: s.Choices()}
	}
	return node, nil
}

func (s *Switch) build(b *builder, prefix string) (built, error) {
	name := strings.TrimSuffix(prefix, "-")

	choice := s.Default
	src := SourceDefault
	if v, from, ok := b.resolve(name, ""); ok {
		if given := fmt.Sprint(v); given != "" {
			choice = given
			src = from
		}
	}
	if choice == "" {
		return built{}, &MissingDiscriminatorError{Name: name}
	}

	node, err := s.option(name, choice)
	if err != nil {
		return built{}, err
	}
	b.logger.Debug("Switch resolved.", "switch", name, "choice", choice, "source", src)

	res := built{choices: map[string]any{name: choice}}
	if node == nil {
		return res, nil
	}

	inst, err := b.buildNode(node, prefix)
	if err != nil {
		return built{}, err
	}
	res.instance = inst
	return res, nil
}
