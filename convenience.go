// File: lixenwraith/objconfig/convenience.go
package objconfig

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Quick builds node from os.Args[1:] and the environment in a single call.
// Malformed arguments print usage and exit, like any pflag program.
// This is the recommended way to initialize configuration for most applications
func Quick(node *Node, envPrefix string) (*Instance, error) {
	return NewBuilder(node).
		WithArgs(os.Args[1:]).
		WithEnvPrefix(envPrefix).
		WithErrorHandling(pflag.ExitOnError).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(node *Node, envPrefix string) *Instance {
	inst, err := Quick(node, envPrefix)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return inst
}
