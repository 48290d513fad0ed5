// FILE: lixenwraith/objconfig/flags.go
package objconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Parser wraps a pflag.FlagSet populated by Setup and remembers the raw
// arguments so switches can peek at the active choice before parsing.
type Parser struct {
	fs    *pflag.FlagSet
	args  []string
	owned map[string]bool
}

// NewParser creates a parser for args (typically os.Args[1:]).
// With pflag.ExitOnError malformed values terminate the process with usage.
func NewParser(name string, args []string, handling pflag.ErrorHandling) *Parser {
	fs := pflag.NewFlagSet(name, handling)
	fs.SortFlags = false
	return &Parser{
		fs:    fs,
		args:  args,
		owned: make(map[string]bool),
	}
}

// FlagSet exposes the underlying flag set so callers can register their own flags.
// Flags not registered through Setup are not part of Parse's result.
func (p *Parser) FlagSet() *pflag.FlagSet { return p.fs }

// Setup registers one flag per field of node and its descendants on p.
// Switches register only the branch selected on the command line (or their
// default), so help output reflects the active choice.
func Setup(node *Node, p *Parser) error {
	return node.setup("", p)
}

// Parse parses the raw arguments and returns the flat mapping consumed by Build.
// Only flags that were explicitly given appear in the result, so unset flags
// fall through to the environment and declared defaults.
func (p *Parser) Parse() (map[string]any, error) {
	if err := p.fs.Parse(p.args); err != nil {
		return nil, err
	}
	if rest := p.fs.Args(); len(rest) > 0 {
		return nil, &LeftoverArgumentsError{Keys: rest}
	}

	raw := make(map[string]any)
	p.fs.Visit(func(f *pflag.Flag) {
		if !p.owned[f.Name] {
			return
		}
		if g, ok := f.Value.(valueGetter); ok {
			raw[f.Name] = g.Get()
		}
	})
	return raw, nil
}

// register adds an owned flag, reporting a clash instead of letting pflag panic.
func (p *Parser) register(name, usage string, value pflag.Value) (*pflag.Flag, error) {
	if p.fs.Lookup(name) != nil {
		return nil, fmt.Errorf("%w: --%s", ErrFlagRedefined, name)
	}
	f := p.fs.VarPF(value, name, "", usage)
	p.owned[name] = true
	return f, nil
}

// peek scans the unparsed arguments for the last value given to --name.
func (p *Parser) peek(name string) (string, bool) {
	flag := "--" + name
	var value string
	found := false

	for i := 0; i < len(p.args); i++ {
		arg := p.args[i]
		if arg == "--" {
			break
		}
		if arg == flag && i+1 < len(p.args) {
			value = p.args[i+1]
			found = true
			i++
			continue
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			value = v
			found = true
		}
	}
	return value, found
}

func fieldUsage(f Field) string {
	var def string
	switch {
	case !f.HasDefault:
		def = "Required."
	case f.Default == nil:
		def = "Default: none"
	default:
		def = fmt.Sprintf("Default: %v", f.Default)
	}
	return strings.TrimSpace(f.Help + "  " + def)
}

func (n *Node) setup(prefix string, p *Parser) error {
	if n.Schema != nil {
		for _, f := range n.Schema.Fields() {
			if strings.HasPrefix(f.Name, "_") {
				continue
			}

			var value pflag.Value
			if f.IsList() {
				value = newListValue(f.Type)
			} else {
				value = newFieldValue(f.Type)
			}

			flag, err := p.register(prefix+f.Name, fieldUsage(f), value)
			if err != nil {
				return err
			}
			if value.Type() == "bool" {
				flag.NoOptDefVal = "true"
			}
		}
	}

	for _, name := range n.childNames() {
		if err := n.Children[name].setup(prefix+name+"-", p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Switch) setup(prefix string, p *Parser) error {
	name := strings.TrimSuffix(prefix, "-")

	choice, inferred := p.peek(name)
	if choice == "" {
		choice, inferred = s.Default, false
	}

	var usage strings.Builder
	if inferred {
		fmt.Fprintf(&usage, "Inferred %s; help shown corresponds to that option. ", choice)
	}
	fmt.Fprintf(&usage, "Switch accepting: [%s].", strings.Join(s.Choices(), ", "))
	if s.Default != "" {
		fmt.Fprintf(&usage, " Default: '%s'.", s.Default)
	}
	usage.WriteString(" Pass another option to see available arguments for that option.")

	if _, err := p.register(name, usage.String(), &choiceValue{}); err != nil {
		return err
	}

	if choice == "" {
		return nil
	}
	node, err := s.option(name, choice)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}
	return node.setup(prefix, p)
}
