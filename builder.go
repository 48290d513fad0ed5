// File: lixenwraith/objconfig/builder.go
package objconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// ValidatorFunc defines the signature for a function that can validate a built tree.
// It receives the finished *Instance and should return an error if validation fails.
type ValidatorFunc func(inst *Instance) error

// Builder provides a fluent interface running the whole pipeline:
// defaults file, flag setup, argument parsing, tree build and validation.
type Builder struct {
	node       *Node
	name       string
	args       []string
	handling   pflag.ErrorHandling
	file       string
	discovery  *FileDiscoveryOptions
	buildOpts  []BuildOption
	env        Env
	logger     *slog.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a builder for node reading os.Args[1:]
func NewBuilder(node *Node) *Builder {
	return &Builder{
		node:       node,
		name:       filepath.Base(os.Args[0]),
		args:       os.Args[1:],
		handling:   pflag.ContinueOnError,
		env:        OSEnv{},
		logger:     slog.Default(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithName sets the program name shown in usage output
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithErrorHandling sets how the flag set reacts to malformed arguments
func (b *Builder) WithErrorHandling(handling pflag.ErrorHandling) *Builder {
	b.handling = handling
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.buildOpts = append(b.buildOpts, WithEnvPrefix(prefix))
	return b
}

// WithEnv sets the environment used for lookups and file discovery
func (b *Builder) WithEnv(env Env) *Builder {
	if env != nil {
		b.env = env
		b.buildOpts = append(b.buildOpts, WithEnv(env))
	}
	return b
}

// WithEnvTransform sets a custom environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.buildOpts = append(b.buildOpts, WithEnvTransform(fn))
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
		b.buildOpts = append(b.buildOpts, WithLogger(logger))
	}
	return b
}

// WithDefaultsFile layers the values of a TOML, JSON or YAML file over the
// root node's compiled-in defaults
func (b *Builder) WithDefaultsFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileDiscovery enables automatic defaults file discovery. The CLI flag
// named in opts is accepted by the parser but not passed to the tree.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build runs the pipeline. A missing defaults file is not fatal: the
// instance is returned together with an error wrapping ErrDefaultsNotFound.
func (b *Builder) Build() (*Instance, error) {
	node := b.node
	var loadErr error

	path := b.file
	if path == "" && b.discovery != nil {
		path = FindDefaultsFile(*b.discovery, b.args, b.env)
	}
	if path != "" {
		defaults, err := LoadDefaultsFile(path)
		switch {
		case err == nil:
			node = node.WithDefaults(defaults)
			b.logger.Debug("Defaults file loaded.", "path", path, "keys", len(defaults))
		case errors.Is(err, ErrDefaultsNotFound):
			loadErr = err
		default:
			return nil, err
		}
	}

	p := NewParser(b.name, b.args, b.handling)
	if b.discovery != nil && b.discovery.CLIFlag != "" {
		p.FlagSet().String(strings.TrimLeft(b.discovery.CLIFlag, "-"), "", "Path of a defaults file.")
	}
	if err := Setup(node, p); err != nil {
		return nil, fmt.Errorf("failed to set up flags: %w", err)
	}

	raw, err := p.Parse()
	if err != nil {
		return nil, err
	}

	inst, err := Build(node, raw, b.buildOpts...)
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(inst); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrDefaultsNotFound or nil
	return inst, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Instance {
	inst, err := b.Build()
	if err != nil {
		// A missing defaults file still leaves a usable tree
		if !errors.Is(err, ErrDefaultsNotFound) {
			panic(fmt.Sprintf("config build failed: %v", err))
		}
	}
	return inst
}
