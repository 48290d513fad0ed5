// FILE: lixenwraith/objconfig/resolve.go
package objconfig

import "log/slog"

// Source identifies where a resolved value came from
type Source string

const (
	// SourceDefault is the schema's declared default
	SourceDefault Source = "default"
	// SourceOverride is a compiled-in override from Node.Defaults
	SourceOverride Source = "override"
	// SourceEnv is an environment variable
	SourceEnv Source = "env"
	// SourceCLI is an explicit argument in the raw mapping
	SourceCLI Source = "cli"
)

// resolver drains the raw argument mapping for a single build.
// Keys injected from the environment or from overrides remember their
// origin so provenance survives the uniform injection.
type resolver struct {
	envPrefix string
	env       Env
	transform EnvTransformFunc
	logger    *slog.Logger

	args    map[string]any
	origins map[string]Source
}

// resolve consumes prefix+field, consulting the environment when the key is absent.
func (r *resolver) resolve(prefix, field string) (any, Source, bool) {
	key := prefix + field
	if v, src, ok := r.take(key); ok {
		return v, src, true
	}
	if r.checkEnv(key) {
		return r.take(key)
	}
	return nil, "", false
}

// take removes key from the mapping and returns its value and origin.
func (r *resolver) take(key string) (any, Source, bool) {
	v, ok := r.args[key]
	if !ok {
		return nil, "", false
	}
	delete(r.args, key)

	src, injected := r.origins[key]
	if !injected {
		src = SourceCLI
	}
	delete(r.origins, key)
	return v, src, true
}

// checkEnv injects the environment value for key when one exists and the
// mapping does not already hold key. Lookup is disabled without an env prefix.
func (r *resolver) checkEnv(key string) bool {
	if r.envPrefix == "" {
		return false
	}

	name := r.transform(r.envPrefix, key)
	v, ok := r.env.LookupEnv(name)
	if !ok {
		return false
	}

	if _, exists := r.args[key]; !exists {
		r.args[key] = v
		r.origins[key] = SourceEnv
		r.logger.Debug("Environment value injected.", "flag", key, "env", name)
	}
	return true
}

// setDefault stores an override for key unless a value is already present.
func (r *resolver) setDefault(key string, v any) {
	if v == nil {
		return
	}
	if _, exists := r.args[key]; exists {
		return
	}
	r.args[key] = v
	r.origins[key] = SourceOverride
}
