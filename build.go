// FILE: lixenwraith/objconfig/build.go
package objconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// BuildOption configures a Build call.
type BuildOption func(*buildConfig)

type buildConfig struct {
	envPrefix string
	env       Env
	transform EnvTransformFunc
	logger    *slog.Logger
}

// WithEnvPrefix enables environment lookup: flag "model-batch_size" with
// prefix "ML" is read from ML_MODEL_BATCH_SIZE. Empty disables lookup.
func WithEnvPrefix(prefix string) BuildOption {
	return func(c *buildConfig) {
		c.envPrefix = prefix
	}
}

// WithEnv replaces the process environment, e.g. with a MapEnv in tests.
func WithEnv(env Env) BuildOption {
	return func(c *buildConfig) {
		if env != nil {
			c.env = env
		}
	}
}

// WithEnvTransform customizes how flag names map to environment variables.
func WithEnvTransform(fn EnvTransformFunc) BuildOption {
	return func(c *buildConfig) {
		if fn != nil {
			c.transform = fn
		}
	}
}

// WithLogger sets the logger used for debug output during resolution.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// builder carries the state of one top-level Build call.
type builder struct {
	*resolver
}

// Build resolves node against raw, the flat dashed mapping produced by
// Parser.Parse (or assembled by hand). Nil values in raw count as unset.
// raw itself is not modified. Every key of raw must be consumed by some
// node, otherwise a LeftoverArgumentsError is returned.
func Build(node *Node, raw map[string]any, opts ...BuildOption) (*Instance, error) {
	cfg := buildConfig{
		env:       OSEnv{},
		transform: DefaultEnvTransform,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if v != nil {
			args[k] = v
		}
	}

	b := &builder{resolver: &resolver{
		envPrefix: cfg.envPrefix,
		env:       cfg.env,
		transform: cfg.transform,
		logger:    cfg.logger,
		args:      args,
		origins:   make(map[string]Source),
	}}

	inst, err := b.buildNode(node, "")
	if err != nil {
		return nil, err
	}

	if len(b.args) > 0 {
		return nil, &LeftoverArgumentsError{Keys: slices.Sorted(maps.Keys(b.args))}
	}

	cfg.logger.Debug("Configuration tree built.", "node", node.name(), "env_prefix", cfg.envPrefix)
	return inst, nil
}

// buildNode builds n under prefix, wrapping any failure with the node's identity.
func (b *builder) buildNode(n *Node, prefix string) (*Instance, error) {
	inst, err := b.construct(n, prefix)
	if err != nil {
		return nil, &ConstructionError{Node: n.name(), Prefix: prefix, Err: err}
	}
	return inst, nil
}

func (b *builder) construct(n *Node, prefix string) (*Instance, error) {
	// Overrides rank below explicit arguments and the environment
	for _, k := range slices.Sorted(maps.Keys(n.Defaults)) {
		key := prefix + k
		b.checkEnv(key)
		b.setDefault(key, n.Defaults[k])
	}

	inst := &Instance{
		node:     n,
		prefix:   prefix,
		children: make(map[string]*Instance),
		choices:  make(map[string]any),
		sources:  make(map[string]Source),
	}

	if n.Schema != nil {
		payload := make(map[string]any)
		var nulls []string

		for _, f := range n.Schema.Fields() {
			if strings.HasPrefix(f.Name, "_") {
				continue
			}

			v, src, ok := b.resolve(prefix, f.Name)
			if ok {
				payload[f.Name] = v
				inst.sources[f.Name] = src
				b.logger.Debug("Field resolved.", "flag", prefix+f.Name, "source", src)
				continue
			}

			if f.NullDefault() {
				nulls = append(nulls, f.Name)
				continue
			}
			inst.sources[f.Name] = SourceDefault
		}

		if len(nulls) > 0 {
			return nil, &NullDefaultError{Node: n.name(), Fields: nulls}
		}

		config, err := n.Schema.Validate(payload)
		if err != nil {
			if errors.Is(err, ErrUnknownField) {
				return nil, err
			}
			return nil, &SchemaValidationError{Node: n.name(), Payload: payload, Err: err}
		}
		inst.config = config
	}

	for _, name := range n.childNames() {
		res, err := n.Children[name].build(b, prefix+name+"-")
		if err != nil {
			return nil, err
		}

		if res.instance != nil {
			inst.children[name] = res.instance
		}
		for k, v := range res.choices {
			if _, dup := inst.choices[k]; dup {
				return nil, &DuplicateHyperparameterError{Key: k}
			}
			inst.choices[k] = v
		}
	}

	if n.New != nil {
		obj, err := n.New(inst)
		if err != nil {
			return nil, fmt.Errorf("construct: %w", err)
		}
		inst.object = obj
	}

	return inst, nil
}
