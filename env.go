// FILE: lixenwraith/objconfig/env.go
package objconfig

import (
	"os"
	"strings"
)

// Env is a read-only view of environment variables.
type Env interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

// LookupEnv implements Env using os.LookupEnv.
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is an Env backed by a map, mostly useful in tests.
type MapEnv map[string]string

// LookupEnv implements Env.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvTransformFunc converts an env prefix and a dashed flag name to an environment variable name
type EnvTransformFunc func(prefix, flagName string) string

// DefaultEnvTransform maps prefix "ML" and flag "model-batch_size" to ML_MODEL_BATCH_SIZE.
func DefaultEnvTransform(prefix, flagName string) string {
	env := strings.ToUpper(prefix + "_" + flagName)
	return strings.ReplaceAll(env, "-", "_")
}
